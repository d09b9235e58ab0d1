package models

import "travelog/db"

func Init() {
	if err := db.Instance.AutoMigrate(&Place{}, &PlaceType{}, &Photo{}, &User{}); err != nil {
		panic(err)
	}
}
