package models

import "go.mongodb.org/mongo-driver/bson"

type Store struct {
	Meta         `bson:",inline"`
	Name         string   `json:"name" bson:"name" binding:"required"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	Address      string   `json:"address,omitempty" bson:"address,omitempty"`
	Phone        string   `json:"phone,omitempty" bson:"phone,omitempty"`
	OwnerID      string   `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	WarehouseIDs []string `json:"warehouse_ids,omitempty" bson:"warehouse_ids,omitempty"`
}

type StoreUpdate struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Address      *string  `json:"address"`
	Phone        *string  `json:"phone"`
	OwnerID      *string  `json:"owner_id"`
	WarehouseIDs []string `json:"warehouse_ids"`
}

func (u *StoreUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.Name != nil {
		patch["name"] = *u.Name
	}
	if u.Description != nil {
		patch["description"] = *u.Description
	}
	if u.Address != nil {
		patch["address"] = *u.Address
	}
	if u.Phone != nil {
		patch["phone"] = *u.Phone
	}
	if u.OwnerID != nil {
		patch["owner_id"] = *u.OwnerID
	}
	if u.WarehouseIDs != nil {
		patch["warehouse_ids"] = u.WarehouseIDs
	}
	return patch
}
