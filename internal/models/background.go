package models

// Background — фон комнаты из фиксированного каталога
type Background struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Backgrounds — доступные фоны; URL собирается клиентом
// относительно публичного хранилища
var Backgrounds = []Background{
	{ID: "video-1", Name: "Video 1", URL: "/backgrounds/video-1.mp4"},
	{ID: "video-2", Name: "Video 2", URL: "/backgrounds/video-2.mp4"},
	{ID: "video-3", Name: "Video 3", URL: "/backgrounds/video-3.mp4"},
	{ID: "video-4", Name: "Video 4", URL: "/backgrounds/video-4.mp4"},
	{ID: "video-5", Name: "Video 5", URL: "/backgrounds/video-5.mp4"},
}

const DefaultBackgroundID = "video-1"

// IsValidBackground проверяет id по каталогу
func IsValidBackground(id string) bool {
	for _, b := range Backgrounds {
		if b.ID == id {
			return true
		}
	}
	return false
}
