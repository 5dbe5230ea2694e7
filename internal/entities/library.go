package entities

type Book struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"size:100;not null" json:"title"`
	Author string `gorm:"size:50;not null" json:"author"`
}

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;not null" json:"email"`
}

// BorrowedBook records that a book is lent to a user. The book id is the
// primary key, so a book can have at most one outstanding borrow.
type BorrowedBook struct {
	BookID        uint `gorm:"primaryKey;autoIncrement:false" json:"bookId"`
	UserID        uint `gorm:"index;not null" json:"userId"`
	BorrowedFrom  Date `gorm:"not null" json:"borrowedFrom"`
	BorrowedUntil Date `gorm:"index;not null" json:"borrowedUntil"`

	// Only used to declare the foreign keys; never loaded or serialized.
	Book Book `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

func (User) TableName() string {
	return "users"
}

func (BorrowedBook) TableName() string {
	return "borrowed_books"
}
