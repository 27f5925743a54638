package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity record owned by the credential store. Accounts start
// unconfirmed; IsEmailVerified flips to true only when a valid confirmation
// code is redeemed.
type User struct {
	bun.BaseModel    `bun:"table:users,alias:usr"`
	ID               uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email            string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash     string     `bun:"password_hash" json:"-"`
	IsEmailVerified  bool       `bun:"is_email_verified" json:"is_email_verified"`
	ConfirmationHash string     `bun:"confirmation_hash,nullzero" json:"-"`
	CreatedAt        *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt        *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt        *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Client is a customer record managed through the CRUD surface
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:cli"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	Address       string     `bun:"address" json:"address,omitempty"`
	City          string     `bun:"city" json:"city,omitempty"`
	Country       string     `bun:"country" json:"country,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}
