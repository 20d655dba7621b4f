package models

type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"type:varchar(200);uniqueIndex;not null"`
	Color string `json:"color" gorm:"type:varchar(7);uniqueIndex;not null"`
	Slug  string `json:"slug" gorm:"type:varchar(200);uniqueIndex;not null"`
}

type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"type:varchar(200);not null;uniqueIndex:uniq_ingredient,priority:1"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(200);not null;uniqueIndex:uniq_ingredient,priority:2"`
}
