package pricing

import (
	"regexp"
	"strings"
)

var (
	regionPattern = regexp.MustCompile(`(?i)region\s+(east|west)`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// Sanitize приводит название товара из прайс-листа к каноническому виду:
// убирает региональные метки, применяет таблицу замен по порядку,
// схлопывает пробелы. Пустое название остается пустым.
func (c *Config) Sanitize(name string) string {
	if name == "" {
		return ""
	}

	result := regionPattern.ReplaceAllString(name, "")
	for _, r := range c.Replacements {
		result = strings.ReplaceAll(result, r.From, r.To)
	}
	result = spacePattern.ReplaceAllString(result, " ")

	return strings.TrimSpace(result)
}

// IsExcluded проверяет, попадает ли товар под список исключений.
// Сравнение регистронезависимое, по вхождению подстроки.
func (c *Config) IsExcluded(name string) bool {
	upper := strings.ToUpper(name)
	for _, keyword := range c.Exclusions {
		if strings.Contains(upper, strings.ToUpper(keyword)) {
			return true
		}
	}
	return false
}
