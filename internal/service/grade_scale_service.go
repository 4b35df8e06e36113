package service

// GradeScaleService maps a percentage total onto the letter scale used in
// transcripts and the aggregate results view.
type GradeScaleService interface {
	LetterFor(percentage float64) string
}

type gradeScaleService struct{}

func NewGradeScaleService() GradeScaleService {
	return &gradeScaleService{}
}

func (s *gradeScaleService) LetterFor(percentage float64) string {
	switch {
	case percentage >= 70:
		return "A"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 45:
		return "D"
	case percentage >= 40:
		return "E"
	default:
		return "F"
	}
}
