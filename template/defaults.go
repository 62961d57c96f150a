package template

import "github.com/astegaru/linkedin-responder/classify"

// DefaultTemplates returns the built-in reply variants. Every classifier
// category is covered so the fallback path can never come up empty.
func DefaultTemplates() map[classify.Category][]string {
	return map[classify.Category][]string{
		classify.CategoryJobOffer: {
			"Hi {name}, thank you for reaching out about this opportunity. Could you share more details about the position, including the salary range, the number of interview rounds, and whether fully remote work is possible?",
			"Hi {name}, I appreciate your message regarding this role. I'm always open to discussing interesting positions. Could you tell me more about the responsibilities, the tech stack, and the expected salary range?",
			"Hi {name}, thanks for thinking of me for this position. I'd like to learn more about the team and expectations before going further. What would the interview process look like, and is remote work an option?",
		},
		classify.CategoryRecruiterIntro: {
			"Hi {name}, thank you for connecting. I'm always interested in hearing about opportunities that match my background. Could you tell me more about the specific role you have in mind?",
			"Hi {name}, I appreciate you reaching out. I'm selectively exploring new opportunities at the moment. Could you share more details about the position and the company you're recruiting for?",
		},
		classify.CategoryFollowUp: {
			"Hi {name}, thank you for the additional information. I've reviewed the details and I'm interested in discussing this further. Would you be available for a brief call?",
			"Hi {name}, thanks for sharing more about the position. Based on what you've described, I'd like to learn more. What would be the next steps?",
		},
		classify.CategoryNotInterested: {
			"Hi {name}, thank you for thinking of me. After careful consideration, I don't think this is the right fit for me at this time. I appreciate your consideration and wish you success in finding the right candidate.",
			"Hi {name}, I appreciate you reaching out about this role. I've decided to focus on opportunities that more closely align with my current direction. Thank you for considering me.",
		},
		classify.CategoryOther: {
			"Hi {name}, thank you for your message. Could you give me a bit more context about your inquiry? I'd be happy to continue the conversation once I understand it better.",
		},
	}
}
