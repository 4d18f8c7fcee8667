package model

type Breed struct {
	ID          int64    `json:"id"`
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Origin      string   `json:"origin"`
	Description string   `json:"description"`
	Homes       []string `json:"homes"`
}

type BreedInput struct {
	Name        string
	Origin      string
	Description string
}

var BreedSchema = Schema{
	Resource: ResourceBreed,
	Fields: []Field{
		{Name: "name", Kind: FieldString, Required: true, MaxLength: nameMaxLength},
		{Name: "origin", Kind: FieldString, Required: true, MaxLength: nameMaxLength},
		{Name: "description", Kind: FieldString, AllowBlank: true, Default: ""},
	},
}

func (b *Breed) Resolve() {
	b.URL = ResourcePath(ResourceBreed, b.ID)
	if b.Homes == nil {
		b.Homes = []string{}
	}
}

func (b *Breed) Input() BreedInput {
	return BreedInput{Name: b.Name, Origin: b.Origin, Description: b.Description}
}

func (in *BreedInput) Apply(data CleanedData) {
	if v, ok := data.String("name"); ok {
		in.Name = v
	}
	if v, ok := data.String("origin"); ok {
		in.Origin = v
	}
	if v, ok := data.String("description"); ok {
		in.Description = v
	}
}
