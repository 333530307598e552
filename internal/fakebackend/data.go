package fakebackend

import "github.com/optilearn/schedulease/internal/api"

// SeedNUID and SeedName identify the user every fresh Server knows.
const (
	SeedNUID = "001234567"
	SeedName = "Alex Kim"
)

func seedUser() *user {
	return &user{
		NUID: SeedNUID,
		Name: SeedName,
		ProgrammingExperience: map[string]int{
			"Python": 4,
			"Java":   3,
			"SQL":    2,
		},
		MathExperience: map[string]int{
			"Linear Algebra": 3,
			"Probability":    4,
		},
		Interests: []string{"Machine Learning", "Deep Learning", "Web Development"},
		CompletedCourses: []api.CompletedCourse{
			{SubjectCode: "CS5010", CourseName: "Programming Design Paradigm", WeeklyWorkload: 15, FinalGrade: "92", ExperienceRating: 4},
			{SubjectCode: "CS5800", CourseName: "Algorithms", WeeklyWorkload: 20, FinalGrade: "85", ExperienceRating: 3},
		},
		CoreSubjects: []string{"CS5010", "CS5800", "CS6650"},
	}
}

func seedCatalog() []api.Course {
	return []api.Course{
		course("CS5010", "Programming Design Paradigm", true, "High", 8, 2,
			[]string{"Java"}, []string{"Logic"}, nil),
		course("CS5800", "Algorithms", true, "High", 6, 2,
			[]string{"Python"}, []string{"Discrete Mathematics", "Complexity Analysis", "Graph Theory"}, nil),
		course("CS6650", "Building Scalable Distributed Systems", true, "High", 5, 1,
			[]string{"Java", "Go"}, []string{"CAP Theorem"}, []string{"CS5010"}),
		course("CS6140", "Machine Learning", false, "High", 6, 2,
			[]string{"Python"}, []string{"Linear Algebra", "Probability", "Calculus"}, []string{"CS5800"}),
		course("CS6120", "Natural Language Processing", false, "Medium", 5, 1,
			[]string{"Python"}, []string{"Probability", "vector space models"}, []string{"CS6140"}),
		course("CS5200", "Database Management Systems", false, "High", 6, 2,
			[]string{"SQL", "Python"}, []string{"Set Theory"}, nil),
		course("CS5610", "Web Development", false, "Medium", 7, 1,
			[]string{"JavaScript", "SQL", "Python"}, nil, nil),
		course("CS5700", "Fundamentals of Computer Networking", false, "Medium", 5, 2,
			[]string{"C", "Python"}, []string{"Probability"}, nil),
		course("CS5600", "Computer Systems", false, "High", 7, 2,
			[]string{"C", "Assembly"}, nil, nil),
		course("CS6220", "Data Mining Techniques", false, "Medium", 5, 1,
			[]string{"Python", "R"}, []string{"Statistics", "Linear Algebra"}, nil),
		course("CS5310", "Computer Graphics", false, "Low", 6, 1,
			[]string{"C++"}, []string{"Geometric transformations", "Matrix operations"}, nil),
		course("CS5100", "Foundations of Artificial Intelligence", false, "High", 5, 2,
			[]string{"Python"}, []string{"Probability", "Logic"}, nil),
		course("CS6510", "Advanced Software Development", false, "Low", 4, 0,
			[]string{"Java"}, nil, []string{"CS5010"}),
		course("CS5520", "Mobile Application Development", false, "Medium", 6, 1,
			[]string{"Kotlin", "Java"}, nil, nil),
		course("CS7180", "Special Topics in Artificial Intelligence", false, "Low", 4, 1,
			[]string{"Python"}, []string{"Transformers", "Probability"}, []string{"CS6140"}),
	}
}

func course(id, name string, core bool, demand string, assignments, exams int, langs, math, prereq []string) api.Course {
	return api.Course{
		SubjectID:                  id,
		SubjectName:                name,
		Description:                "An overview of " + name + ".",
		IsCore:                     core,
		EnrollmentDemand:           demand,
		AssignmentCount:            assignments,
		ExamCount:                  exams,
		CourseOutcomes:             []string{"Apply " + name + " concepts", "Complete a term project"},
		ProgrammingKnowledgeNeeded: orEmpty(langs),
		MathRequirements:           orEmpty(math),
		Prerequisite:               orEmpty(prereq),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
