package models

// Image is the part of an EC2 machine image the generator cares about
type Image struct {
	ImageID      string
	Name         string
	State        string
	Architecture string
}
