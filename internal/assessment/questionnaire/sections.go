// internal/assessment/questionnaire/sections.go
package questionnaire

type Section struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	FirstStep int    `json:"firstStep"`
	LastStep  int    `json:"lastStep"`
	Position  int    `json:"position"`
	Length    int    `json:"length"`
	Complete  bool   `json:"complete"`
}

type sectionDef struct {
	title     string
	message   string
	firstStep int
	lastStep  int
}

var sections = []sectionDef{
	{"About your condition", "Let's start with the basics of what you're experiencing", 1, 3},
	{"Treatment history", "Tell us what you've already tried", 4, 7},
	{"Daily impact", "Help us understand how this affects your life", 8, 10},
	{"Treatment preferences", "Almost there, just your preferences left", 11, 13},
	{"Final details", "Last couple of questions before your results", 14, 15},
}

// SectionFor maps a step to its named section. Steps past the last question map
// to the final section marked complete.
func SectionFor(step, total int) Section {
	if len(sections) == 0 {
		return Section{}
	}
	if step < 1 {
		step = 1
	}

	complete := step > total
	for i, def := range sections {
		if step > def.lastStep && i < len(sections)-1 {
			continue
		}
		pos := step - def.firstStep + 1
		length := def.lastStep - def.firstStep + 1
		if pos > length {
			pos = length
		}
		msg := def.message
		if complete {
			msg = "Your assessment is ready to submit"
		}
		return Section{
			Number:    i + 1,
			Title:     def.title,
			Message:   msg,
			FirstStep: def.firstStep,
			LastStep:  def.lastStep,
			Position:  pos,
			Length:    length,
			Complete:  complete,
		}
	}
	return Section{}
}
