package model

import "time"

type EmailTemplateType string

const (
	EmailTemplateScheduled  EmailTemplateType = "scheduled"   // Подтверждение записи
	EmailTemplateWatched    EmailTemplateType = "watched"     // Посмотрел урок
	EmailTemplateNotWatched EmailTemplateType = "not_watched" // Не начал
	EmailTemplatePartial    EmailTemplateType = "partial"     // Посмотрел частично
	EmailTemplateDay1       EmailTemplateType = "day1"
	EmailTemplateDay3       EmailTemplateType = "day3"
	EmailTemplateDay5       EmailTemplateType = "day5"
	EmailTemplateDay7       EmailTemplateType = "day7"
)

// EmailTemplateKind тип шаблона с подписью для админки
type EmailTemplateKind struct {
	Type  EmailTemplateType `json:"id"`
	Label string            `json:"label"`
}

// EmailTemplateKinds в порядке отображения
var EmailTemplateKinds = []EmailTemplateKind{
	{Type: EmailTemplateScheduled, Label: "Confirmação de Agendamento"},
	{Type: EmailTemplateWatched, Label: "Cumpriu a Aula"},
	{Type: EmailTemplateNotWatched, Label: "Não Iniciou"},
	{Type: EmailTemplatePartial, Label: "Assistiu Parcialmente"},
	{Type: EmailTemplateDay1, Label: "Remarketing (1 Dia)"},
	{Type: EmailTemplateDay3, Label: "Remarketing (3 Dias)"},
	{Type: EmailTemplateDay5, Label: "Remarketing (5 Dias)"},
	{Type: EmailTemplateDay7, Label: "Remarketing (7 Dias)"},
}

// IsKnown тип есть среди EmailTemplateKinds
func (t EmailTemplateType) IsKnown() bool {
	for _, k := range EmailTemplateKinds {
		if k.Type == t {
			return true
		}
	}
	return false
}

type EmailTemplate struct {
	Type      EmailTemplateType `json:"type"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
}
