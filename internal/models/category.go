package models

import "go.mongodb.org/mongo-driver/bson"

// Category is a self-referential tree node; the parent must exist at write
// time but no cycle check is performed.
type Category struct {
	Meta        `bson:",inline"`
	Name        string `json:"name" bson:"name" binding:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	ImageURL    string `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
	ImageURL    *string `json:"image_url"`
}

func (u *CategoryUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.Name != nil {
		patch["name"] = *u.Name
	}
	if u.Description != nil {
		patch["description"] = *u.Description
	}
	if u.ParentID != nil {
		patch["parent_id"] = *u.ParentID
	}
	if u.ImageURL != nil {
		patch["image_url"] = *u.ImageURL
	}
	return patch
}
