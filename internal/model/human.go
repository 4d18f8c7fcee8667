package model

type Human struct {
	ID            int64    `json:"id"`
	URL           string   `json:"url"`
	Name          string   `json:"name"`
	Gender        string   `json:"gender"`
	GenderDisplay string   `json:"gender_display"`
	DateOfBirth   *Date    `json:"date_of_birth"`
	Description   string   `json:"description"`
	HomeID        int64    `json:"home"`
	CatIDs        []int64  `json:"-"`
	Cats          []string `json:"cats"`
}

type HumanInput struct {
	Name        string
	Gender      string
	DateOfBirth *Date
	Description string
	HomeID      int64
}

var HumanSchema = Schema{
	Resource: ResourceHuman,
	Fields: []Field{
		{Name: "name", Kind: FieldString, Required: true, MaxLength: nameMaxLength},
		{Name: "gender", Kind: FieldChoice, Required: true, Choices: GenderChoices},
		{Name: "date_of_birth", Kind: FieldDate, Nullable: true},
		{Name: "description", Kind: FieldString, AllowBlank: true, Default: ""},
		{Name: "home", Kind: FieldRef, Required: true},
	},
}

func (h *Human) Resolve() {
	h.URL = ResourcePath(ResourceHuman, h.ID)
	h.GenderDisplay = GenderChoices.Label(h.Gender)
	h.Cats = make([]string, 0, len(h.CatIDs))
	for _, id := range h.CatIDs {
		h.Cats = append(h.Cats, ResourcePath(ResourceCat, id))
	}
}

func (h *Human) Input() HumanInput {
	return HumanInput{
		Name:        h.Name,
		Gender:      h.Gender,
		DateOfBirth: h.DateOfBirth,
		Description: h.Description,
		HomeID:      h.HomeID,
	}
}

func (in *HumanInput) Apply(data CleanedData) {
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
	if v, ok := data.Int64("home"); ok {
		in.HomeID = v
	}
}
