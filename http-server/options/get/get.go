package get

import (
	"net/http"

	"github.com/go-chi/render"

	"ficha/internal/constants"
	"ficha/internal/service/report"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ResponseOptions struct {
	Periods  []Option `json:"periods"`
	Projects []string `json:"projects"`
	Variants []Option `json:"variants"`
}

// GetOptions lists the values the selectors accept.
func GetOptions() http.HandlerFunc {
	periods := make([]Option, 0, len(constants.Periods()))
	for _, p := range constants.Periods() {
		periods = append(periods, Option{Value: p.Value(), Label: p.Label()})
	}
	variants := make([]Option, 0, len(report.Variants))
	for _, v := range report.Variants {
		variants = append(variants, Option{Value: string(v), Label: v.Label()})
	}
	resp := ResponseOptions{Periods: periods, Projects: constants.Projects, Variants: variants}

	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, resp)
	}
}
