package models

import "go.mongodb.org/mongo-driver/bson"

type Brand struct {
	Meta        `bson:",inline"`
	Name        string `json:"name" bson:"name" binding:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Country     string `json:"country,omitempty" bson:"country,omitempty"`
	Website     string `json:"website,omitempty" bson:"website,omitempty" binding:"omitempty,url"`
	LogoID      string `json:"logo_id,omitempty" bson:"logo_id,omitempty"`
}

// BrandUpdate carries the patchable fields; only non-nil fields are applied.
type BrandUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Country     *string `json:"country"`
	Website     *string `json:"website" binding:"omitempty,url"`
	LogoID      *string `json:"logo_id"`
}

func (u *BrandUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.Name != nil {
		patch["name"] = *u.Name
	}
	if u.Description != nil {
		patch["description"] = *u.Description
	}
	if u.Country != nil {
		patch["country"] = *u.Country
	}
	if u.Website != nil {
		patch["website"] = *u.Website
	}
	if u.LogoID != nil {
		patch["logo_id"] = *u.LogoID
	}
	return patch
}
