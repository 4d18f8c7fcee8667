package model

type Cat struct {
	ID            int64  `json:"id"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	GenderDisplay string `json:"gender_display"`
	DateOfBirth   *Date  `json:"date_of_birth"`
	Description   string `json:"description"`
	BreedID       int64  `json:"breed"`
	OwnerID       int64  `json:"owner"`
	// Home is the name of the owner's home.
	Home string `json:"home"`
}

type CatInput struct {
	Name        string
	Gender      string
	DateOfBirth *Date
	Description string
	BreedID     int64
	OwnerID     int64
}

var CatSchema = Schema{
	Resource: ResourceCat,
	Fields: []Field{
		{Name: "name", Kind: FieldString, Required: true, MaxLength: nameMaxLength},
		{Name: "gender", Kind: FieldChoice, Required: true, Choices: GenderChoices},
		{Name: "date_of_birth", Kind: FieldDate, Nullable: true},
		{Name: "description", Kind: FieldString, AllowBlank: true, Default: ""},
		{Name: "breed", Kind: FieldRef, Required: true},
		{Name: "owner", Kind: FieldRef, Required: true},
	},
}

func (c *Cat) Resolve() {
	c.URL = ResourcePath(ResourceCat, c.ID)
	c.GenderDisplay = GenderChoices.Label(c.Gender)
}

func (c *Cat) Input() CatInput {
	return CatInput{
		Name:        c.Name,
		Gender:      c.Gender,
		DateOfBirth: c.DateOfBirth,
		Description: c.Description,
		BreedID:     c.BreedID,
		OwnerID:     c.OwnerID,
	}
}

func (in *CatInput) Apply(data CleanedData) {
	if v, ok := data.String("name"); ok {
		in.Name = v
	}
	if v, ok := data.String("gender"); ok {
		in.Gender = v
	}
	if v, ok := data.Date("date_of_birth"); ok {
		in.DateOfBirth = v
	}
	if v, ok := data.String("description"); ok {
		in.Description = v
	}
	if v, ok := data.Int64("breed"); ok {
		in.BreedID = v
	}
	if v, ok := data.Int64("owner"); ok {
		in.OwnerID = v
	}
}
