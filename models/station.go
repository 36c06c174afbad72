package models

// Station is a physical sensing device owned by exactly one user. The id is
// a hexadecimal string so it can be derived from the device's hardware
// address; it is immutable once registered.
type Station struct {
	StationID string `json:"station_id" gorm:"primaryKey"`
	Location  string `json:"location" gorm:"not null"`
	UserID    uint   `json:"user_id" gorm:"not null;index"`

	User User `json:"-" gorm:"foreignKey:UserID"`

	// Declared here so AutoMigrate puts the foreign key on readings
	Readings []Reading `json:"-" gorm:"foreignKey:StationID;references:StationID"`
}
