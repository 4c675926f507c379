package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Categories accepted on a transaction record.
const (
	CategoryOferta     = "Oferta"
	CategoryDizimo     = "Dízimo"
	CategoryDoacao     = "Doação"
	CategoryAluguel    = "Aluguel"
	CategorySalario    = "Salário"
	CategoryManutencao = "Manutenção"
	CategoryEventos    = "Eventos"
	CategoryOutros     = "Outros"
)

// TransactionCategories lists every accepted category in display order.
var TransactionCategories = []string{
	CategoryOferta, CategoryDizimo, CategoryDoacao, CategoryAluguel,
	CategorySalario, CategoryManutencao, CategoryEventos, CategoryOutros,
}

// Transaction is a ledger entry. Amount uses the defensive Amount type
// because historical documents carry it as a string in some records.
type Transaction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type         TransactionType    `bson:"type" json:"type"`
	Amount       Amount             `bson:"amount" json:"amount"`
	Date         string             `bson:"date" json:"date"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	Observations string             `bson:"observations,omitempty" json:"observations,omitempty"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// ValidTransactionType reports whether t is income or expense.
func ValidTransactionType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// ValidTransactionCategory reports whether c is one of the accepted categories.
func ValidTransactionCategory(c string) bool {
	for _, known := range TransactionCategories {
		if c == known {
			return true
		}
	}
	return false
}
