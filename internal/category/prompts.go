package category

import "time"

var prompts = map[int64][]string{
	1: {
		"What is your family background?",
		"What are your earliest childhood memories?",
		"What are your first memories and key moments from early years?",
		"Tell us about your siblings and childhood friends",
		"Describe your childhood home and environment",
		"What were your first experiences (school, friends, etc.)?",
		"Did you have any childhood pets? Tell us about them",
		"What were the significant family events from your childhood?",
	},
	2: {
		"What were your early schooling experiences like?",
		"Tell us about your high school years - key moments, friends, achievements",
		"What were your college/university experiences?",
		"Did you receive any vocational training or specialized education?",
		"Who were your memorable teachers or mentors?",
		"What education challenges and achievements stand out?",
		"What were your favorite subjects and academic interests?",
	},
	3: {
		"What was your first job and early work experiences?",
		"What were your major career choices and milestones?",
		"What career challenges and achievements have you faced?",
		"Tell us about significant work relationships and colleagues",
		"What were your most significant projects or accomplishments?",
		"How have you grown professionally?",
		"Have you experienced any career changes or shifts?",
		"Did you have any entrepreneurial ventures?",
	},
	4: {
		"What key life lessons have you learned?",
		"What challenges and obstacles have you faced?",
		"Tell us about failures and how you overcame adversity",
		"What are your personal milestones or achievements?",
		"What is your philosophy on life, success, and happiness?",
		"Share moments of self-discovery",
		"How has your worldview or beliefs changed over time?",
	},
	5: {
		"Tell us about your parents and family dynamics",
		"Share your experiences with marriage and romantic relationships",
		"What has been your experience with children and parenting?",
		"What are some key moments with family members?",
		"What family traditions and values are important to you?",
		"How are your relationships with extended family?",
		"Tell us about important friendships and bonds",
		"What life lessons have been passed down through generations?",
	},
	6: {
		"Have you faced any significant health challenges?",
		"How has physical activity or sports impacted your life?",
		"Share your mental health experiences and growth",
		"What are your wellness routines or personal habits?",
		"What major health changes or milestones have you experienced?",
		"How do you cope with aging or life changes?",
	},
	7: {
		"Tell us about your sports and athletic endeavors",
		"What are your experiences with art, music, and creativity?",
		"What are your favorite books and reading experiences?",
		"Share your travel and exploration experiences",
		"Have you been involved in volunteer work or community service?",
		"What hobbies have you collected over time?",
		"Tell us about your personal projects or creative outlets",
	},
	8: {
		"What travel adventures or relocations have you experienced?",
		"Tell us about moving to a new city or country",
		"How have you overcome significant crises or losses?",
		"Share special celebrations (weddings, anniversaries)",
		"What were your key milestones?",
		"What historical events have you lived through?",
	},
	9: {
		"What core values and beliefs have shaped your life choices?",
		"Tell us about your experience with religion or spirituality",
		"How has your cultural identity and heritage influenced you?",
		"What are your views on education, work, and family?",
		"Share your political views or activism experiences",
		"What is your personal philosophy and life lessons?",
	},
	10: {
		"What do you hope to be remembered for?",
		"What contributions have you made to community or society?",
		"Tell us about your experience mentoring or teaching others",
		"How have you influenced others' lives?",
		"What are your wishes for future generations?",
		"What hopes and dreams do you have for your family or legacy?",
	},
	11: {
		"What were your favorite childhood games or activities?",
		"Tell us about memorable vacations or family trips",
		"Share funny or quirky life moments",
		"What are your favorite jokes or stories?",
		"Tell us about celebrations and parties",
		"Share your favorite pet stories and humorous memories",
	},
	12: {
		"What were your early dreams and ambitions?",
		"Tell us about achieving long-term goals",
		"What goals do you still wish to achieve?",
		"Share your bucket list items or experiences yet to have",
		"What are your hopes for the future (personal and societal)?",
	},
}

// DailyPrompt is the prompt of the day shown on the home screen and sent by
// the push reminder.
type DailyPrompt struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Prompt       string `json:"prompt"`
}

// Daily picks a deterministic prompt for the given date so that every client
// and the reminder scheduler agree on the same question all day.
func Daily(t time.Time) DailyPrompt {
	day := t.YearDay() + t.Year()*366
	cat := categories[day%len(categories)]
	list := prompts[cat.ID]
	return DailyPrompt{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Prompt:       list[day%len(list)],
	}
}
