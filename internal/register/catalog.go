package register

import "strings"

// Languages is the fixed list of programming languages rated in step 2.
var Languages = []string{
	"Assembly", "C", "C#", "C++", "Go", "Haskell", "Java", "JavaScript",
	"Kotlin", "MATLAB", "Python", "R", "Rust", "SQL", "Scala",
}

// MathTopics is the fixed list of math topics rated in step 3.
var MathTopics = []string{
	"Algorithms", "Applied statistics", "Basic Statistics", "Basic knowledge of Statistics",
	"Bayesian inference", "CAP Theorem", "Calculus", "Combinatorics",
	"Complexity Analysis", "Decision", "Decision Trees", "Differential Calculus",
	"Discrete Mathematics", "Geometric transformations", "Graph Theory", "Lexical Analysis",
	"Linear Algebra", "Logic", "Markov", "Matrix operations",
	"Probability", "Regression", "Rendering Optimization", "Sentiment Analysis",
	"Set Theory", "Statistics", "Transformers", "vector space models",
}

// Group is a named set of interest categories.
type Group struct {
	Name       string
	Categories []string
}

// Groups lists the interest categories offered in step 6.
var Groups = []Group{
	{
		Name: "technical-domains",
		Categories: []string{
			"artificial intelligence", "machine learning", "web", "data science",
			"database", "security", "mobile", "systems", "cloud", "graphics",
			"game development", "computer science fundamentals",
			"human-computer interaction", "robotics", "extended reality",
			"software engineering", "networks", "mathematics", "computer vision",
			"natural language processing",
		},
	},
	{
		Name: "programming-languages",
		Categories: []string{
			"python", "java", "cpp", "csharp", "javascript", "rust", "c", "go",
			"scala", "r", "matlab", "programming language theory",
		},
	},
}

// Title renders a group or category key for display: "technical-domains"
// becomes "Technical Domains".
func Title(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Categories returns every category in group order.
func Categories() []string {
	var out []string
	for _, g := range Groups {
		out = append(out, g.Categories...)
	}
	return out
}

// Topics returns the topics of category, or nil for an unknown category.
func Topics(category string) []string {
	return topics[category]
}

var topics = map[string][]string{
	"artificial intelligence": {
		"Artificial Intelligence", "Machine Learning", "Deep Learning", "Neural Networks",
		"Natural Language Processing", "Computer Vision", "Reinforcement Learning",
		"Pattern Recognition", "Transformers", "BERT", "GPT", "TensorFlow", "PyTorch",
		"Sentiment Analysis", "Knowledge Representation", "Sequential Decision Making",
		"Emotion Recognition",
	},
	"machine learning": {
		"Machine Learning", "Deep Learning", "Neural Networks", "TensorFlow", "PyTorch",
		"Classification", "CNN", "RNN", "Prediction", "SVMs", "Ensemble methods",
		"Feature Engineering", "Overfitting", "Cross-Validation", "Scikit-learn",
	},
	"web": {
		"JavaScript", "HTML", "CSS", "React", "Node.js", "RESTful APIs", "Web Security",
		"API Design",
	},
	"data science": {
		"Data Processing", "Data Cleaning", "Data Wrangling", "Data Warehousing",
		"ETL Pipelines", "Data visualization theory", "Statistics", "Pandas",
		"Jupyter Notebooks", "Big Data", "Hadoop", "Apache Spark", "MapReduce",
		"Cross-Validation",
	},
	"database": {
		"SQL", "NoSQL", "Database Design", "Query", "Elasticsearch",
	},
	"security": {
		"Cryptography", "Network Security", "Web Security", "Encryption",
	},
	"mobile": {
		"Android Studio", "Firebase", "MVVM", "iOS", "Android", "Kotlin", "Cross-platform",
	},
	"systems": {
		"Operating Systems", "Memory Management", "File Systems", "Concurrency",
		"Multithreading", "Distributed systems", "Computer Systems", "OS kernel design",
		"OS structure", "Kernel Development",
	},
	"cloud": {
		"AWS", "Azure", "Serverless Architecture", "Microservices", "Docker", "Kubernetes",
		"Infrastructure as Code", "Terraform", "Virtualization", "Load Balancing", "DevOps",
		"YAML",
	},
	"graphics": {
		"Computer Graphics", "2D Graphics", "3D Graphics", "Ray tracing",
		"Rendering Optimization", "Geometric transformations", "3D modeling techniques",
		"rasterization", "shaders", "GPU Acceleration",
	},
	"game development": {
		"Game Development", "Unity", "Unreal Engine", "Entity-Component Systems",
		"Physics Simulation", "Engine architecture", "Pathfinding",
	},
	"computer science fundamentals": {
		"Algorithms", "Data Structures", "Complexity Analysis", "Dynamic Programming",
		"Sorting Algorithms", "Searching Algorithms", "Graph Algorithms", "NP-Completeness",
		"Approximation Algorithms", "Randomized Algorithms", "Advanced algorithmic techniques",
		"Divide-and-Conquer", "Graph Theory", "Decision Trees", "CAP Theorem",
		"Consensus Algorithms", "Raft", "PageRank",
	},
	"human-computer interaction": {
		"Human-Computer Interaction", "User Interface Design", "User Experience Design",
		"accessibility", "Human subject studies", "Equity in CS education",
		"Methods for conducting empirical research",
	},
	"robotics": {
		"Robotics", "Kinematics",
	},
	"extended reality": {
		"Virtual Reality", "Augmented Reality", "Extended Reality", "Spatial Computing",
		"3D Interaction",
	},
	"software engineering": {
		"Software Development Life Cycle", "Agile Methodology", "Unit Testing",
		"Design Patterns", "UML", "Object-Oriented Design", "Object-Oriented Programming",
		"Software Development", "DevOps", "Project management", "Large-scale projects",
		"Industry collaboration", "Ethics", "Code Generation", "LLVM", "Parsing",
		"Lexical Analysis", "Tokenization", "Programming paradigms", "Problem Solving",
	},
	"networks": {
		"TCP/IP", "Routing Algorithms", "Distributed Computing", "Computer Networking",
	},
	"mathematics": {
		"Linear Algebra", "Statistics", "Probability", "Calculus", "Discrete Mathematics",
		"Set Theory", "Logic", "Combinatorics", "Matrix operations", "Differential Calculus",
		"Applied statistics", "Basic Statistics", "Bayesian inference", "Regression",
		"Markov", "vector space models", "IR models",
	},
	"computer vision": {
		"Computer Vision", "Image Processing", "Object Detection", "CNN",
		"Image Classification", "Computer Graphics",
	},
	"natural language processing": {
		"Natural Language Processing", "BERT", "GPT", "Sentiment Analysis", "Transformers",
		"Tokenization", "TF-IDF",
	},
	"python": {
		"Python", "Pandas", "Jupyter Notebooks", "Scikit-learn",
	},
	"java": {
		"Java", "JVM", "Android",
	},
	"cpp": {
		"C++", "STL", "Memory Management",
	},
	"csharp": {
		"C#", ".NET", "Xamarin",
	},
	"javascript": {
		"JavaScript", "Node.js", "React", "Angular", "Vue",
	},
	"rust": {
		"Rust", "Memory safety",
	},
	"c": {
		"C", "Pointers",
	},
	"go": {
		"Go",
	},
	"scala": {
		"Scala",
	},
	"r": {
		"R",
	},
	"matlab": {
		"MATLAB",
	},
	"programming language theory": {
		"semantics of programming languages", "language design", "Syntax",
		"Functional programming", "Type theory",
	},
}
