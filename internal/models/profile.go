package models

import "gorm.io/datatypes"

// Profile holds the free-form parts of a user's gamer profile.
type Profile struct {
	ID     uint           `json:"id" gorm:"primaryKey"`
	UserID uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio    string         `json:"bio" gorm:"type:text"`
	Links  datatypes.JSON `json:"links"`
	Games  datatypes.JSON `json:"games"`
}

// UpdateBioRequest defines the request body for updating the profile bio
type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=2000"`
}

// UpdateLinksRequest defines the request body for replacing profile links
type UpdateLinksRequest struct {
	Links map[string]string `json:"links" validate:"required"`
}

// UpdateGamesRequest defines the request body for replacing the games list
type UpdateGamesRequest struct {
	Games map[string]interface{} `json:"games" validate:"required"`
}
