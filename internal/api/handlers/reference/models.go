package reference

import "github.com/m04kA/SMC-CarSpot/internal/domain"

// Row запись справочника с именем колонки ID конкретной таблицы:
// {"id_brand": 1, "name": "Toyota"}
type Row map[string]interface{}

// EntityResponse ответ на создание и обновление
type EntityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newRow(kind domain.ReferenceKind, e *domain.NamedEntity) Row {
	return Row{
		kind.IDColumn: e.ID,
		"name":        e.Name,
	}
}

func newEntityResponse(e *domain.NamedEntity) EntityResponse {
	return EntityResponse{ID: e.ID, Name: e.Name}
}
