package models

// User is an operator account. Password holds the bcrypt digest and is
// excluded from every JSON response.
type User struct {
	Username  string `json:"username" dynamodbav:"username"`
	Password  string `json:"-" dynamodbav:"password"`
	Role      string `json:"role" dynamodbav:"role"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
}

const DefaultUserRole = "user"
