package models

import (
	"travelog/db"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique;not null"`
	Password  string `gorm:"type:varchar(100)"` // bcrypt hash
}

func UserCreate(name, email, plainTextPassword string) (u User, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	u.Name = name
	u.Email = email
	u.Password = string(hash)
	return u, db.Instance.Create(&u).Error
}

func UserLogin(email, plainTextPassword string) (u User, success bool) {
	if db.Instance.First(&u, "email = ?", email).Error != nil {
		return User{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, false
	}
	return u, true
}
