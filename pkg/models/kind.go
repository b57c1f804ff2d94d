package models

// Kind is the direction of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Person is the household member a transaction is attributed to.
type Person string

const (
	PersonBoth  Person = "Both"
	PersonCarol Person = "Carol"
	PersonDan   Person = "Dan"
	PersonOther Person = "Other"
)

// Valid reports whether p is a known person.
func (p Person) Valid() bool {
	switch p {
	case PersonBoth, PersonCarol, PersonDan, PersonOther:
		return true
	}
	return false
}

// Role is the role of a member in a household.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)
