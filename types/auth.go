package types

import (
	"github.com/DamienMonchaty/VIbe/db"
)

type ServerAuth struct {
	AuthToken *db.AuthToken
	User      *db.User
}
