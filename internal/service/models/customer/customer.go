package customer

// Customer is the contact snapshot embedded in an order. It is copied from the
// request at creation time and never synced with any customer directory.
type Customer struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}
