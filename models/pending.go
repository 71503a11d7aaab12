package models

// PendingVisitor is a pre-registered visitor awaiting approval at the gate.
type PendingVisitor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address   string `json:"address"`
	Host      string `json:"host"`
	Purpose   string `json:"purpose"`
}
