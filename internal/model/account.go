package model

// Account is an operator allowed to change member data (bulk updates, team
// creation). Password holds a bcrypt hash.
type Account struct {
	ID       uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Email    string `gorm:"column:email;type:VARCHAR2(255);not null;uniqueIndex:idx_account_email"`
	Name     string `gorm:"column:name;type:VARCHAR2(100);not null"`
	Password string `gorm:"column:password;type:VARCHAR2(60);not null"`

	BaseEntity
}

// TableName specifies the table name for Account
func (*Account) TableName() string {
	return "account"
}

// NewAccount expects an already hashed password
func NewAccount(name, email, hashedPassword string) *Account {
	return &Account{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}
}
