// sanitize.go — подготовка имени файла для хранения на диске.
// SanitizeName — чистая функция с явным контрактом: произвольная
// строка → безопасный компонент пути файловой системы.
package filestore

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// maxNameLen — ограничение длины имени для предотвращения проблем с FS.
const maxNameLen = 50

// SanitizeName преобразует произвольную строку в безопасный компонент
// пути. Буквы (включая юникод), цифры, точка, дефис и подчёркивание
// сохраняются, пробелы заменяются на подчёркивание, остальные символы
// (разделители пути, нулевые байты, управляющие) отбрасываются.
// Ведущие точки отбрасываются, чтобы имя не стало скрытым файлом или
// ссылкой на родительскую директорию. Пустой результат заменяется
// на "file".
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	name := strings.TrimLeft(b.String(), ".")
	if name == "" {
		return "file"
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}

// StorageName генерирует имя файла для хранения на диске.
// Формат: {unix-секунды}_{sanitized displayName}.{ext}
// ext — расширение без точки, в нижнем регистре.
// Два вызова в одну секунду с одинаковым displayName дают одно имя —
// более поздняя запись молча перезаписывает раннюю (принятый edge case).
func StorageName(displayName, ext string, now time.Time) string {
	return fmt.Sprintf("%d_%s.%s", now.Unix(), SanitizeName(displayName), ext)
}
