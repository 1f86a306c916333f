package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyURL               = "url"
	KeyEnterURL          = "enter_url"
	KeyQuality           = "quality"
	KeyChooseFolder      = "choose_folder"
	KeyOpenFolder        = "open_folder"
	KeyNoFolder          = "no_folder"
	KeyCurrentProgress   = "current_progress"
	KeyTotalProgress     = "total_progress"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeyToggleTheme       = "toggle_theme"
	KeyLog               = "log"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyErrorOpeningDir   = "error_opening_folder"
	KeyStatusIdle        = "status_idle"
	KeyStatusEnumerating = "status_enumerating"
	KeyStatusDownloading = "status_downloading"
	KeyStatusCompleted   = "status_completed"
	KeyStatusCancelled   = "status_cancelled"
	KeyStatusFailed      = "status_failed"
	KeyStatusStopping    = "status_stopping"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Fetch",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyURL:               "Video URL:",
		KeyEnterURL:          "Enter a video or playlist URL (https://youtube.com/watch?v=...)",
		KeyQuality:           "Quality:",
		KeyChooseFolder:      "Choose Folder",
		KeyOpenFolder:        "Open Folder",
		KeyNoFolder:          "No folder selected",
		KeyCurrentProgress:   "Current Video Progress",
		KeyTotalProgress:     "Total Playlist/Channel Progress",
		KeyDownload:          "Download",
		KeyStop:              "Stop",
		KeyToggleTheme:       "Toggle Theme",
		KeyLog:               "Log",
		KeyPleaseEnterURL:    "Please enter a video URL.",
		KeyErrorOpeningDir:   "Error opening folder",
		KeyStatusIdle:        "Ready",
		KeyStatusEnumerating: "Preparing...",
		KeyStatusDownloading: "Downloading",
		KeyStatusCompleted:   "Completed",
		KeyStatusCancelled:   "Stopped",
		KeyStatusFailed:      "Failed",
		KeyStatusStopping:    "Stopping...",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Fetch",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyURL:               "URL видео:",
		KeyEnterURL:          "Введите URL видео или плейлиста (https://youtube.com/watch?v=...)",
		KeyQuality:           "Качество:",
		KeyChooseFolder:      "Выбрать папку",
		KeyOpenFolder:        "Открыть папку",
		KeyNoFolder:          "Папка не выбрана",
		KeyCurrentProgress:   "Прогресс текущего видео",
		KeyTotalProgress:     "Общий прогресс плейлиста/канала",
		KeyDownload:          "Скачать",
		KeyStop:              "Стоп",
		KeyToggleTheme:       "Сменить тему",
		KeyLog:               "Журнал",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL видео.",
		KeyErrorOpeningDir:   "Ошибка открытия папки",
		KeyStatusIdle:        "Готово",
		KeyStatusEnumerating: "Подготовка...",
		KeyStatusDownloading: "Загрузка",
		KeyStatusCompleted:   "Завершено",
		KeyStatusCancelled:   "Остановлено",
		KeyStatusFailed:      "Ошибка",
		KeyStatusStopping:    "Остановка...",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Fetch",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyURL:               "URL do vídeo:",
		KeyEnterURL:          "Digite a URL de um vídeo ou playlist (https://youtube.com/watch?v=...)",
		KeyQuality:           "Qualidade:",
		KeyChooseFolder:      "Escolher Pasta",
		KeyOpenFolder:        "Abrir Pasta",
		KeyNoFolder:          "Nenhuma pasta selecionada",
		KeyCurrentProgress:   "Progresso do Vídeo Atual",
		KeyTotalProgress:     "Progresso Total da Playlist/Canal",
		KeyDownload:          "Baixar",
		KeyStop:              "Parar",
		KeyToggleTheme:       "Alternar Tema",
		KeyLog:               "Registro",
		KeyPleaseEnterURL:    "Por favor, digite a URL de um vídeo.",
		KeyErrorOpeningDir:   "Erro ao abrir pasta",
		KeyStatusIdle:        "Pronto",
		KeyStatusEnumerating: "Preparando...",
		KeyStatusDownloading: "Baixando",
		KeyStatusCompleted:   "Concluído",
		KeyStatusCancelled:   "Parado",
		KeyStatusFailed:      "Falhou",
		KeyStatusStopping:    "Parando...",
	}
}
