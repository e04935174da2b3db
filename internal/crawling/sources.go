package crawling

// DefaultSources is the fixed list of pages harvested on every run, in order.
var DefaultSources = []string{
	"https://www.geeksforgeeks.org/top-100-data-structure-and-algorithms-dsa-interview-questions-topic-wise/",
	"https://www.indeed.com/career-advice/interviewing/hr-interview-questions",
	"https://www.interviewbit.com/hr-interview-questions/",
	"https://leetcode.com/discuss/general-discussion/459219/blind-75-leetcode-questions",
	"https://www.javatpoint.com/data-structure-interview-questions",
	"https://www.hackerrank.com/interview/interview-preparation-kit",
	"https://www.careerride.com/Interview-Questions.aspx",
	"https://www.toptal.com/interview-questions",
	"https://www.simplilearn.com/tutorials/data-structure-tutorial/data-structure-interview-questions",
	"https://www.educative.io/blog/crack-system-design-interview",
}

// Sources returns a copy of DefaultSources.
func Sources() []string {
	out := make([]string, len(DefaultSources))
	copy(out, DefaultSources)
	return out
}
