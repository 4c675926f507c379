package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberStatus reflects the member's standing in the congregation.
type MemberStatus string

const (
	StatusAtivo      MemberStatus = "Ativo"
	StatusInativo    MemberStatus = "Inativo"
	StatusVisitante  MemberStatus = "Visitante"
	StatusCongregado MemberStatus = "Congregado"
)

// MemberRole is the ministry role assigned to a member.
type MemberRole string

const (
	RoleMembro  MemberRole = "Membro"
	RoleDiacono MemberRole = "Diácono"
	RolePastor  MemberRole = "Pastor"
	RoleLider   MemberRole = "Líder"
	RoleObreiro MemberRole = "Obreiro"
)

// Child is a dependent listed on a member record. Children are not
// independently identified; they live inside the member document in the
// exact order they were entered.
type Child struct {
	Name      string `bson:"name" json:"name"`
	Birthdate string `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
}

// Member is a roster record. Calendar dates are kept as YYYY-MM-DD strings,
// matching the documents written by earlier versions of the system.
type Member struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string             `bson:"phone" json:"phone"`
	CPF          string             `bson:"cpf,omitempty" json:"cpf,omitempty"`
	Birthdate    string             `bson:"birthdate" json:"birthdate"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Status       MemberStatus       `bson:"status,omitempty" json:"status,omitempty"`
	Role         MemberRole         `bson:"role,omitempty" json:"role,omitempty"`
	BaptismDate  string             `bson:"baptism_date,omitempty" json:"baptismDate,omitempty"`
	Spouse       string             `bson:"spouse,omitempty" json:"spouse,omitempty"`
	Children     []Child            `bson:"children,omitempty" json:"children,omitempty"`
	Observations string             `bson:"observations,omitempty" json:"observations,omitempty"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// ValidMemberStatus reports whether s is one of the known status values.
func ValidMemberStatus(s MemberStatus) bool {
	switch s {
	case StatusAtivo, StatusInativo, StatusVisitante, StatusCongregado:
		return true
	}
	return false
}

// ValidMemberRole reports whether r is one of the known role values.
func ValidMemberRole(r MemberRole) bool {
	switch r {
	case RoleMembro, RoleDiacono, RolePastor, RoleLider, RoleObreiro:
		return true
	}
	return false
}
