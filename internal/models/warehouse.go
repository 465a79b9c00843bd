package models

import "go.mongodb.org/mongo-driver/bson"

type Warehouse struct {
	Meta      `bson:",inline"`
	Name      string `json:"name" bson:"name" binding:"required"`
	Location  string `json:"location,omitempty" bson:"location,omitempty"`
	Capacity  *int64 `json:"capacity,omitempty" bson:"capacity,omitempty" binding:"omitempty,gte=0"`
	ManagerID string `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
}

type WarehouseUpdate struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Capacity  *int64  `json:"capacity" binding:"omitempty,gte=0"`
	ManagerID *string `json:"manager_id"`
}

func (u *WarehouseUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.Name != nil {
		patch["name"] = *u.Name
	}
	if u.Location != nil {
		patch["location"] = *u.Location
	}
	if u.Capacity != nil {
		patch["capacity"] = *u.Capacity
	}
	if u.ManagerID != nil {
		patch["manager_id"] = *u.ManagerID
	}
	return patch
}
