package recommend

// SampleQueries are canned job descriptions for trying the recommender out.
var SampleQueries = []string{
	"I am hiring for Java developers who can also collaborate effectively with my business teams. Looking for an assessment(s) that can be completed in 40 minutes .",
	"Looking to hire mid-level professionals who are proficient in Python, SQL and Java Script. Need an assessment package that can test all skills with max duration of 60 minutes. ",
	"I am hiring for an analyst and wants applications to screen using Cognitive and personality tests, what options are available within 45 mins..",
}
