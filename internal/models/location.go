package models

type State struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"size:60;not null"         json:"name"`
	Cities []City `gorm:"foreignKey:StateID"       json:"-"`
}

type City struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:80;not null"         json:"name"`
	StateID uint   `gorm:"index;not null"           json:"state_id"`
	State   *State `json:"state,omitempty"`
}
