package notify

import "strings"

// Плейсхолдеры шаблонов маркетинговых писем
const (
	PlaceholderName       = "{{name}}"
	PlaceholderTime       = "{{hora}}"
	PlaceholderLessonLink = "{{link-da-aula}}"
	PlaceholderLessonName = "{{nome-da-aula}}"
)

// Render подставляет значения в текст. Пустые значения не подставляются,
// плейсхолдер остаётся в тексте как есть (кроме {{name}}).
func Render(text string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for placeholder, value := range values {
		if value == "" && placeholder != PlaceholderName {
			continue
		}
		pairs = append(pairs, placeholder, value)
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
