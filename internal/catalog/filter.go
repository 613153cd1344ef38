package catalog

import (
	"strconv"

	"github.com/matheusmosca/store-backend/internal/apperr"
)

// ParseProductFilter monta o filtro de listagem a partir dos parâmetros de query.
// Parâmetros vazios assumem os padrões (take=10, skip=0, sem categoria).
func ParseProductFilter(categoryID, take, skip string) (ProductFilter, error) {
	filter := ProductFilter{Take: DefaultTake}
	var messages []string

	if categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 32)
		if err != nil || id == 0 {
			messages = append(messages, "category_id must be a positive integer")
		} else {
			v := uint(id)
			filter.CategoryID = &v
		}
	}

	if take != "" {
		n, err := strconv.Atoi(take)
		if err != nil || n < 1 || n > MaxTake {
			messages = append(messages, "take must be an integer between 1 and 100")
		} else {
			filter.Take = n
		}
	}

	if skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil || n < 0 {
			messages = append(messages, "skip must be a non-negative integer")
		} else {
			filter.Skip = n
		}
	}

	if len(messages) > 0 {
		return ProductFilter{}, apperr.Validation(messages...)
	}
	return filter, nil
}
