package domain

// Address is owned by the address-book collaborator. Orders reference
// addresses by id and this core never mutates them.
type Address struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Number  int    `json:"number"`
	Pincode string `json:"pincode"`
}
