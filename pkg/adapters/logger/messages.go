package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Converting %s (%d bytes) as %s sticker": "Преобразование %s (%d байт) в стикер %s",
		"Conversion completed: %s, %d bytes":     "Преобразование завершено: %s, %d байт",
		"Output saved to %s":                     "Результат сохранён в %s",
		"Interrupted, shutting down...":          "Прервано, завершение работы...",
		"Summary saved to %s":                    "Сводка сохранена в %s",
		"Converting %d files with %d jobs":       "Преобразование %d файлов в %d потоков",

		// Detect stage
		"Detected %s (%s), %d bytes": "Обнаружен %s (%s), %d байт",

		// Still image path
		"Input is %s, using still image path":                    "Вход %s, используется путь статичного изображения",
		"No decoder for %s, using still image path":              "Нет декодера для %s, используется путь статичного изображения",
		"No animation found (%d frames), using still image path": "Анимация не найдена (%d кадров), используется путь статичного изображения",

		// Decoders
		"Opening %s decoder (%s)":                       "Открытие декодера %s (%s)",
		"Static schedule: %v":                           "Статическое расписание: %v",
		"GIF opened: %d frames, %dx%d":                  "GIF открыт: %d кадров, %dx%d",
		"GIF stream is cut short, keeping %d complete frames: %v": "Поток GIF оборван, сохранено %d целых кадров: %v",
		"WebP opened: %d frames, %dx%d canvas":          "WebP открыт: %d кадров, холст %dx%d",
		"WebP frame table disagrees with container: %v": "Таблица кадров WebP не совпадает с контейнером: %v",
		"webpmux reported %d frames":                    "webpmux сообщил о %d кадрах",
		"AVIF %s":                                       "AVIF %s",
		"AVIF has no image sequence, treating as still": "В AVIF нет последовательности кадров, обрабатывается как статичное изображение",
		"AVIF primary track %d, alpha track %d":         "AVIF: основная дорожка %d, альфа-дорожка %d",
		"AVIF primary track %d without alpha track":     "AVIF: основная дорожка %d без альфа-дорожки",

		// Schedule and materialize stages
		"%d frames, quantum %d ms, %d expanded frames": "%d кадров, квант %d мс, %d развёрнутых кадров",
		"Materializing %d frames":                      "Подготовка %d кадров",
		"Materialized %d frames":                       "Подготовлено %d кадров",

		// Plan stage
		"Plan: still image":                                      "План: статичное изображение",
		"Plan: %.2f s at %.2f fps, speed-up %.5f, target %d fps": "План: %.2f с при %.2f fps, ускорение %.5f, целевые %d fps",

		// Encoders
		"Encoding %d frames at %s fps, speed-up %.5f":          "Кодирование %d кадров при %s fps, ускорение %.5f",
		"Encoding static image %s":                             "Кодирование статичного изображения %s",
		"Encoded %s: %d bytes":                                 "Закодирован %s: %d байт",
		"Static WebP %dx%d at quality %.0f: %d bytes":          "Статичный WebP %dx%d с качеством %.0f: %d байт",
		"Still images use the %s encoder (requested %s)":       "Статичные изображения кодирует %s (запрошен %s)",
		"ffmpeg not available, encoding still images natively": "ffmpeg недоступен, статичные изображения кодируются встроенным кодировщиком",
		"ffmpeg not found, animated stickers will fail: %v":    "ffmpeg не найден, анимированные стикеры не будут созданы: %v",

		// Warnings
		"Output is %d bytes, above the %d byte limit":     "Результат %d байт превышает ограничение %d байт",
		"webpmux unavailable, treating WebP as still: %v": "webpmux недоступен, WebP обрабатывается как статичное изображение: %v",
		"Cleanup failed: %v":                              "Ошибка очистки: %v",
		"Failed to save debug output: %v":                 "Не удалось сохранить отладочный вывод: %v",

		// Errors
		"Failed to open %s: %v":              "Не удалось открыть %s: %v",
		"Failed to read frame durations: %v": "Не удалось прочитать длительности кадров: %v",
		"Failed to materialize frames: %v":   "Не удалось подготовить кадры: %v",
		"Failed to encode sticker: %v":       "Не удалось закодировать стикер: %v",
		"Failed to write summary: %v":        "Не удалось записать сводку: %v",
		"Failed to convert %s: %v":           "Не удалось преобразовать %s: %v",
	})
}
