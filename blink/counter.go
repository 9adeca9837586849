package blink

import (
	"fmt"

	"github.com/weegigs/wee-blink-go/we"
)

// Variants is the number of angel images a blink count selects between.
const Variants = 6

type Counter struct {
	Current int64 `json:"current"`
}

func (state Counter) Value() int64 {
	return state.Current
}

func (state Counter) Index() int64 {
	return IndexOf(state.Current)
}

func IndexOf(value int64) int64 {
	index := value % Variants
	if index < 0 {
		index += Variants
	}

	return index
}

func ImagePath(index int64) string {
	return fmt.Sprintf("/images/angel-%d.png", IndexOf(index))
}

// Serializer renders the counter resource, including the derived image index.
func Serializer(entity we.Entity[Counter]) (map[string]any, error) {
	resource, err := we.StateSerializer(entity)
	if err != nil {
		return nil, err
	}

	resource["index"] = entity.State.Index()
	resource["image"] = ImagePath(entity.State.Index())

	return resource, nil
}
