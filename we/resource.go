package we

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type EntitySerializer[T any] func(entity Entity[T]) (map[string]any, error)

func StateSerializer[T any](entity Entity[T]) (map[string]any, error) {
	serialized, err := json.Marshal(entity.State)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal state")
	}

	resource := make(map[string]any)
	if err = json.Unmarshal(serialized, &resource); err != nil {
		return nil, errors.Wrap(err, "state is not a json object")
	}

	return resource, nil
}

type EntityEncoder[T any] interface {
	Encode(w http.ResponseWriter, r *http.Request, e Entity[T]) error
}

type ResourceEncoder[T any] struct {
	Serializer EntitySerializer[T]
}

func NewResourceEncoder[T any](serializer EntitySerializer[T]) *ResourceEncoder[T] {
	return &ResourceEncoder[T]{Serializer: serializer}
}

func (encoder *ResourceEncoder[T]) Encode(w http.ResponseWriter, r *http.Request, e Entity[T]) error {
	serialize := encoder.Serializer
	if serialize == nil {
		serialize = StateSerializer[T]
	}

	resource, err := serialize(e)
	if err != nil {
		http.Error(w, "failed to encode resource", http.StatusInternalServerError)
		return err
	}

	resource["$type"] = e.Type
	resource["$revision"] = e.Revision
	resource["$timestamp"] = e.Revision.Timestamp()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	return json.NewEncoder(w).Encode(resource)
}
