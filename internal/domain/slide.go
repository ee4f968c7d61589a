package domain

// Slide is one screen of the launchpad presentation.
type Slide struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Points []string `json:"points"` // at most 3 short point strings
}

// TitleSlideID is the fixed identifier of the locally synthesized title slide.
const TitleSlideID = "title"

// TitleSlidePoints is the fixed three-line subtitle of the title slide.
var TitleSlidePoints = []string{"ICAN Academy", "EduSpace Project", "Space Orienteering"}

// NewTitleSlide builds the title slide that always occupies position 0
// of the deck. It is synthesized locally, never by the backend.
func NewTitleSlide(thesisTitle string) Slide {
	points := make([]string, len(TitleSlidePoints))
	copy(points, TitleSlidePoints)
	return Slide{
		ID:     TitleSlideID,
		Title:  thesisTitle,
		Points: points,
	}
}
