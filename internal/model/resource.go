package model

import "fmt"

const APIPrefix = "/api/v1"

const (
	ResourceHome  = "home"
	ResourceHuman = "human"
	ResourceBreed = "breed"
	ResourceCat   = "cat"
)

// ResourcePath builds the canonical URL path of a stored row.
func ResourcePath(resource string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", APIPrefix, resource, id)
}

var GenderChoices = Choices{
	{Value: "M", Label: "Male"},
	{Value: "F", Label: "Female"},
}

const nameMaxLength = 255
