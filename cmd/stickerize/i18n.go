// Package main provides localization for the stickerize CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Russian translations for CLI messages.
	l10n.Register("ru", l10n.LexiconMap{
		// Flag categories
		"Configuration": "Конфигурация",
		"Tools":         "Инструменты",
		"Processing":    "Обработка",
		"Logging":       "Журналирование",
		"Debug":         "Отладка",

		// Root command
		"Convert animated images into Telegram stickers":                                                                                                          "Преобразование анимированных изображений в стикеры Telegram",
		"stickerize turns GIF, WebP and AVIF animations into VP9 WebM stickers and still images into WebP stickers that fit Telegram's size and duration limits.": "stickerize превращает анимации GIF, WebP и AVIF в стикеры VP9 WebM, а статичные изображения в стикеры WebP, укладываясь в ограничения Telegram по размеру и длительности.",
		"Unknown command %q":                                                                                                                                      "Неизвестная команда %q",
		"Error: %v":                                                                                                                                               "Ошибка: %v",

		// Convert command
		"Convert images into stickers":                             "Преобразовать изображения в стикеры",
		"Output file path (single input only)":                     "Путь к выходному файлу (только для одного входного файла)",
		"Output directory (default: next to each input)":           "Каталог для результатов (по умолчанию рядом с исходным файлом)",
		"Files converted concurrently (0 = number of CPUs)":        "Число одновременно обрабатываемых файлов (0 = число CPU)",
		"Write a Markdown summary of the conversions to this file": "Записать сводку преобразований в формате Markdown в этот файл",
		"Sticker kind (regular, emoji)":                            "Тип стикера (regular, emoji)",

		// Probe command
		"Print the detected format, frame timing and encode plan as JSON": "Вывести формат, тайминг кадров и план кодирования в JSON",

		// Version command
		"Show version information": "Показать версию",
		"stickerize version %s":    "stickerize версия %s",

		// Global flags
		"YAML configuration file":                                                "Файл конфигурации YAML",
		"Path to the ffmpeg executable (falls back to FFMPEG_PATH, then PATH)":   "Путь к ffmpeg (иначе FFMPEG_PATH, затем PATH)",
		"Path to the webpmux executable (falls back to WEBPMUX_PATH, then PATH)": "Путь к webpmux (иначе WEBPMUX_PATH, затем PATH)",
		"Still image encoder (auto, ffmpeg, native)":                             "Кодировщик статичных изображений (auto, ffmpeg, native)",
		"Decode worker slots shared by all files (0 = number of CPUs)":           "Число слотов декодирования на все файлы (0 = число CPU)",
		"Root directory for staging areas":                                       "Корневой каталог для временных файлов",
		"Log level (debug, info, warn, error)":                                   "Уровень журнала (debug, info, warn, error)",
		"Log format (console, hclog, json)":                                      "Формат журнала (console, hclog, json)",
		"Suppress all log output":                                                "Отключить весь вывод журнала",
		"Enable debug output":                                                    "Включить отладочный вывод",
		"Directory for debug output":                                             "Каталог для отладочного вывода",

		// Summary content
		"Conversion Summary":  "Сводка преобразований",
		"Generated":           "Создано",
		"Sticker kind":        "Тип стикера",
		"Converted":           "Преобразовано",
		"Over the size limit": "Превышен размер",
		"Failed":              "С ошибкой",
		"Results":             "Результаты",
		"Input":               "Вход",
		"Source":              "Источник",
		"Output":              "Выход",
		"Frames":              "Кадры",
		"Duration":            "Длительность",
		"Speed-up":            "Ускорение",
		"Size":                "Размер",
		"still":               "статичное",
		"failed: %v":          "ошибка: %v",
	})
}
