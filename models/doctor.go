package models

// Doctor is a global directory entry, not owned by any user.
type Doctor struct {
	ID           uint    `json:"id" bson:"id"`
	FirstName    string  `json:"firstName" bson:"firstName"`
	LastName     string  `json:"lastName" bson:"lastName"`
	Specialty    string  `json:"specialty" bson:"specialty"`
	Practice     string  `json:"practice" bson:"practice"`
	Location     string  `json:"location" bson:"location"`
	Rating       float64 `json:"rating" bson:"rating"`
	ReviewCount  int     `json:"reviewCount" bson:"reviewCount"`
	ProfileImage string  `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
}
