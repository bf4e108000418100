package tokens

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a principal: an authenticated identity. This library only reads
// users; creation and profile management belong to user management.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string       `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string       `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string       `bun:"password_hash" json:"password_hash,omitempty"`
	Authorities   []*Authority `bun:"m2m:user_authorities,join:User=Authority" json:"authorities,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time   `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// GrantedCapabilities flattens the loaded authorities into capability names.
// It returns an empty, non-nil set for a user with no grants.
func (u *User) GrantedCapabilities() []Capability {
	names := make([]Capability, 0, len(u.Authorities))
	for _, authority := range u.Authorities {
		if authority != nil {
			names = append(names, authority.Name)
		}
	}
	return names
}

// Authority is a named permission, many to many with users. Read-only here;
// authority management owns these records.
type Authority struct {
	bun.BaseModel `bun:"table:authorities,alias:aut"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          Capability `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserAuthority joins users to their granted authorities.
type UserAuthority struct {
	bun.BaseModel `bun:"table:user_authorities,alias:uaut"`
	UserID        uuid.UUID  `bun:"user_id,pk,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	AuthorityID   uuid.UUID  `bun:"authority_id,pk,type:uuid" json:"authority_id,omitempty"`
	Authority     *Authority `bun:"rel:belongs-to,join:authority_id=id" json:"authority,omitempty"`
}

// Token is one issued token record. ID doubles as the jti claim; the id and
// the signed string are each globally unique. The owner reference goes null
// if the user is later deleted, the record itself is destroyed exactly once:
// by refresh rotation or by external cleanup.
type Token struct {
	bun.BaseModel `bun:"table:tokens,alias:tkn"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Value         string     `bun:"token,notnull,unique" json:"token,omitempty"`
	UserID        *uuid.UUID `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// RegisterModels registers the join tables bun needs for m2m relations.
// Call it once per bun.DB before using the repositories.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*UserAuthority)(nil))
}
