package jobs

// Keyword rule tables driving enrichment.
//
// The classifier tables fall into two shapes:
//   - first-match-wins tables (category rules, metro aliases, seniority
//     levels, company stages): represented as ordered slices and scanned
//     in sequence. Order is load-bearing: specific phrases come before
//     generic catch-alls, so these must never be converted to maps.
//   - collect-all tables (skill keywords, buzzwords, red flags): every
//     matching entry contributes to the result.
//
// All matching is case-insensitive substring matching against lowered text.

type SkillKeyword struct {
	Keyword string `yaml:"keyword"`
	Skill   string `yaml:"skill"`
}

type CategoryRule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

type MetroAlias struct {
	Alias string `yaml:"alias"`
	Metro string `yaml:"metro"`
}

type SeniorityLevel struct {
	Level    string   `yaml:"level"`
	Keywords []string `yaml:"keywords"`
}

type CompanyStage struct {
	Stage    string   `yaml:"stage"`
	Keywords []string `yaml:"keywords"`
}

type RedFlagGroup struct {
	Flag    string   `yaml:"flag"`
	Phrases []string `yaml:"phrases"`
}

// Ruleset holds every table the enricher consults. Build one with
// DefaultRuleset and optionally extend it from YAML via LoadRulesFile;
// it is never mutated after the enricher is constructed.
type Ruleset struct {
	SkillKeywords   []SkillKeyword
	SkillCategories map[string]string
	CategoryRules   []CategoryRule
	MetroAliases    []MetroAlias
	SeniorityLevels []SeniorityLevel
	TechKeywords    []string
	CompanyStages   []CompanyStage
	Buzzwords       []string
	RedFlags        []RedFlagGroup
	SeniorSignals   []string
	JuniorSignals   []string
}

// DefaultRuleset returns the production rule tables.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		SkillKeywords:   defaultSkillKeywords(),
		SkillCategories: defaultSkillCategories(),
		CategoryRules:   defaultCategoryRules(),
		MetroAliases:    defaultMetroAliases(),
		SeniorityLevels: defaultSeniorityLevels(),
		TechKeywords:    defaultTechKeywords(),
		CompanyStages:   defaultCompanyStages(),
		Buzzwords:       defaultBuzzwords(),
		RedFlags:        defaultRedFlags(),
		SeniorSignals: []string{
			"senior", "sr.", "sr ", "lead", "principal", "staff", "head of", "director",
		},
		JuniorSignals: []string{
			"junior", "jr.", "jr ", "entry", "associate", " i ", " ii ",
		},
	}
}

func defaultSkillKeywords() []SkillKeyword {
	return []SkillKeyword{
		// LLM frameworks
		{"langchain", "LangChain"},
		{"llamaindex", "LlamaIndex"},
		{"llama index", "LlamaIndex"},
		{"semantic kernel", "Semantic Kernel"},
		{"haystack", "Haystack"},
		{"autogen", "AutoGen"},
		{"crewai", "CrewAI"},
		{"dspy", "DSPy"},

		// LLM providers / models
		{"openai", "OpenAI"},
		{"anthropic", "Anthropic"},
		{"claude", "Claude"},
		{"gpt-4", "GPT-4"},
		{"gpt-3", "GPT-3"},
		{"gpt4", "GPT-4"},
		{"llama", "Llama"},
		{"mistral", "Mistral"},
		{"gemini", "Gemini"},
		{"cohere", "Cohere"},
		{"hugging face", "Hugging Face"},
		{"huggingface", "Hugging Face"},

		// Techniques
		{"rag", "RAG"},
		{"retrieval augmented", "RAG"},
		{"fine-tuning", "Fine-tuning"},
		{"fine tuning", "Fine-tuning"},
		{"prompt engineering", "Prompt Engineering"},
		{"embeddings", "Embeddings"},
		{"vector search", "Vector Search"},
		{"rlhf", "RLHF"},
		{"chain of thought", "Chain of Thought"},
		{"multimodal", "Multimodal"},
		{"agentic", "AI Agents"},
		{"ai agent", "AI Agents"},

		// Vector databases
		{"pinecone", "Pinecone"},
		{"weaviate", "Weaviate"},
		{"milvus", "Milvus"},
		{"qdrant", "Qdrant"},
		{"chroma", "Chroma"},
		{"pgvector", "pgvector"},
		{"faiss", "FAISS"},

		// ML frameworks
		{"pytorch", "PyTorch"},
		{"tensorflow", "TensorFlow"},
		{"transformers", "Transformers"},
		{"jax", "JAX"},
		{"keras", "Keras"},
		{"scikit-learn", "scikit-learn"},
		{"sklearn", "scikit-learn"},

		// Languages
		{"python", "Python"},
		{"typescript", "TypeScript"},
		{"javascript", "JavaScript"},
		{"rust", "Rust"},
		{"golang", "Go"},
		{" go ", "Go"},

		// Infrastructure
		{"aws", "AWS"},
		{"azure", "Azure"},
		{"gcp", "GCP"},
		{"google cloud", "GCP"},
		{"kubernetes", "Kubernetes"},
		{"docker", "Docker"},
		{"mlflow", "MLflow"},
		{"wandb", "Weights & Biases"},
		{"weights & biases", "Weights & Biases"},
		{"sagemaker", "SageMaker"},
		{"bedrock", "Bedrock"},
		{"vertex ai", "Vertex AI"},
	}
}

func defaultSkillCategories() map[string]string {
	return map[string]string{
		"LangChain":       "LLM Frameworks",
		"LlamaIndex":      "LLM Frameworks",
		"Semantic Kernel": "LLM Frameworks",
		"Haystack":        "LLM Frameworks",
		"AutoGen":         "LLM Frameworks",
		"CrewAI":          "LLM Frameworks",
		"DSPy":            "LLM Frameworks",

		"OpenAI":       "LLM Providers",
		"Anthropic":    "LLM Providers",
		"Claude":       "LLM Providers",
		"GPT-4":        "LLM Providers",
		"GPT-3":        "LLM Providers",
		"Llama":        "LLM Providers",
		"Mistral":      "LLM Providers",
		"Gemini":       "LLM Providers",
		"Cohere":       "LLM Providers",
		"Hugging Face": "LLM Providers",

		"RAG":                "Techniques",
		"Fine-tuning":        "Techniques",
		"Prompt Engineering": "Techniques",
		"Embeddings":         "Techniques",
		"Vector Search":      "Techniques",
		"RLHF":               "Techniques",
		"Chain of Thought":   "Techniques",
		"Multimodal":         "Techniques",
		"AI Agents":          "Techniques",

		"Pinecone": "Vector Databases",
		"Weaviate": "Vector Databases",
		"Milvus":   "Vector Databases",
		"Qdrant":   "Vector Databases",
		"Chroma":   "Vector Databases",
		"pgvector": "Vector Databases",
		"FAISS":    "Vector Databases",

		"PyTorch":      "ML Frameworks",
		"TensorFlow":   "ML Frameworks",
		"Transformers": "ML Frameworks",
		"JAX":          "ML Frameworks",
		"Keras":        "ML Frameworks",
		"scikit-learn": "ML Frameworks",

		"Python":     "Languages",
		"TypeScript": "Languages",
		"JavaScript": "Languages",
		"Rust":       "Languages",
		"Go":         "Languages",

		"AWS":              "Cloud/Infrastructure",
		"Azure":            "Cloud/Infrastructure",
		"GCP":              "Cloud/Infrastructure",
		"Kubernetes":       "Cloud/Infrastructure",
		"Docker":           "Cloud/Infrastructure",
		"MLflow":           "Cloud/Infrastructure",
		"Weights & Biases": "Cloud/Infrastructure",
		"SageMaker":        "Cloud/Infrastructure",
		"Bedrock":          "Cloud/Infrastructure",
		"Vertex AI":        "Cloud/Infrastructure",
	}
}

// defaultCategoryRules is scanned first-match-wins. The bare catch-alls at
// the bottom (", ai", " ai " and friends) match nearly any AI-adjacent
// title, so every specific phrase has to stay above them.
func defaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{"prompt engineer", "Prompt Engineer"},
		{"prompt specialist", "Prompt Engineer"},

		{"ai agent", "AI Agent Developer"},
		{"agent developer", "AI Agent Developer"},
		{"agent engineer", "AI Agent Developer"},
		{"rag engineer", "RAG Engineer"},
		{"rag developer", "RAG Engineer"},
		{"llm engineer", "LLM Engineer"},
		{"llm developer", "LLM Engineer"},
		{"llm specialist", "LLM Engineer"},
		{"large language model", "LLM Engineer"},

		{"mlops", "MLOps Engineer"},
		{"ml ops", "MLOps Engineer"},
		{"ml infrastructure", "MLOps Engineer"},
		{"ml platform", "MLOps Engineer"},
		{"machine learning platform", "MLOps Engineer"},
		{"ai infrastructure", "MLOps Engineer"},
		{"ai platform engineer", "MLOps Engineer"},

		{"ai safety", "AI Safety"},
		{"ai ethics", "AI Safety"},
		{"responsible ai", "AI Safety"},
		{"ai governance", "AI Safety"},

		{"ai product manager", "AI Product Manager"},
		{"product manager ai", "AI Product Manager"},
		{"product manager ml", "AI Product Manager"},
		{"product manager, ai", "AI Product Manager"},
		{"product manager, ml", "AI Product Manager"},
		{"ml product manager", "AI Product Manager"},
		{"ai pm", "AI Product Manager"},

		{"applied scientist", "Research Scientist"},
		{"research scientist", "Research Scientist"},
		{"staff scientist", "Research Scientist"},
		{"ml scientist", "Research Scientist"},
		{"ai scientist", "Research Scientist"},
		{"research engineer", "Research Engineer"},
		{"ml research", "Research Engineer"},
		{"ai research", "Research Engineer"},

		{"artificial intelligence engineer", "AI/ML Engineer"},
		{"machine learning engineer", "AI/ML Engineer"},
		{"ml engineer", "AI/ML Engineer"},
		{"ai engineer", "AI/ML Engineer"},
		{"ai/ml engineer", "AI/ML Engineer"},
		{"ai developer", "AI/ML Engineer"},
		{"ml developer", "AI/ML Engineer"},
		{"nlp engineer", "AI/ML Engineer"},
		{"natural language", "AI/ML Engineer"},
		{"deep learning engineer", "AI/ML Engineer"},
		{"deep learning", "AI/ML Engineer"},
		{"generative ai", "AI/ML Engineer"},
		{"gen ai", "AI/ML Engineer"},
		{"genai", "AI/ML Engineer"},
		{"computer vision engineer", "AI/ML Engineer"},
		{"computer vision", "AI/ML Engineer"},
		{"cv engineer", "AI/ML Engineer"},
		{"speech recognition", "AI/ML Engineer"},
		{"speech engineer", "AI/ML Engineer"},
		{"recommendation system", "AI/ML Engineer"},
		{"recommendations engineer", "AI/ML Engineer"},

		{"software engineer, ai", "AI Software Engineer"},
		{"software engineer, ml", "AI Software Engineer"},
		{"software engineer - ai", "AI Software Engineer"},
		{"software engineer - ml", "AI Software Engineer"},
		{"sr. software engineer, ai", "AI Software Engineer"},
		{"senior software engineer, ai", "AI Software Engineer"},
		{"ai software engineer", "AI Software Engineer"},
		{"ai full-stack", "AI Software Engineer"},
		{"ai-native", "AI Software Engineer"},
		{"ai backend", "AI Software Engineer"},

		{"engineering manager, ai", "AI Engineering Manager"},
		{"engineering manager, ml", "AI Engineering Manager"},
		{"engineering manager - ai", "AI Engineering Manager"},
		{"ai engineering manager", "AI Engineering Manager"},
		{"ml engineering manager", "AI Engineering Manager"},
		{"manager, ai", "AI Engineering Manager"},
		{"manager, ml", "AI Engineering Manager"},
		{"manager, applied ai", "AI Engineering Manager"},
		{"head of ai", "AI Engineering Manager"},
		{"head of ml", "AI Engineering Manager"},
		{"director of ai", "AI Engineering Manager"},
		{"director of ml", "AI Engineering Manager"},
		{"vp of ai", "AI Engineering Manager"},
		{"vp, ai", "AI Engineering Manager"},

		{"ai architect", "AI Architect"},
		{"ml architect", "AI Architect"},
		{"ai enterprise architect", "AI Architect"},
		{"cloud ai architect", "AI Architect"},
		{"solutions architect, ai", "AI Architect"},
		{"solutions architect ai", "AI Architect"},

		{"data scientist", "Data Scientist"},
		{"senior data scientist", "Data Scientist"},
		{"staff data scientist", "Data Scientist"},
		{"principal data scientist", "Data Scientist"},
		{"lead data scientist", "Data Scientist"},

		{"data engineer", "Data Engineer"},
		{"senior data engineer", "Data Engineer"},
		{"lead data engineer", "Data Engineer"},
		{"staff data engineer", "Data Engineer"},
		{"data engineering", "Data Engineer"},
		{"analytics engineer", "Data Engineer"},

		{"ai devops", "AI/ML Engineer"},
		{"ai cloud", "AI/ML Engineer"},
		{"ai infrastructure engineer", "AI/ML Engineer"},

		{"ai consultant", "AI Consultant"},
		{"ai specialist", "AI Consultant"},
		{"ai functional", "AI Consultant"},
		{"ai advisor", "AI Consultant"},

		{"ai product architect", "AI Product Manager"},
		{"ai/ml product", "AI Product Manager"},
		{"product architect, ai", "AI Product Manager"},

		{"ai native", "AI Software Engineer"},
		{"sr. developer ai", "AI Software Engineer"},
		{"developer ai", "AI Software Engineer"},
		{"developer, ai", "AI Software Engineer"},

		{"language engineer", "AI/ML Engineer"},
		{"agi ", "AI/ML Engineer"},
		{"artificial general intelligence", "AI/ML Engineer"},

		// Catch-all AI mentions in title, lowest priority.
		{", ai", "AI/ML Engineer"},
		{"- ai", "AI/ML Engineer"},
		{" ai ", "AI/ML Engineer"},
		{" ai/", "AI/ML Engineer"},
		{"/ai ", "AI/ML Engineer"},
	}
}

// Order pins published metro counts; do not alphabetize.
func defaultMetroAliases() []MetroAlias {
	return []MetroAlias{
		{"san francisco", "San Francisco"},
		{"sf", "San Francisco"},
		{"bay area", "San Francisco"},
		{"palo alto", "San Francisco"},
		{"menlo park", "San Francisco"},
		{"mountain view", "San Francisco"},
		{"sunnyvale", "San Francisco"},
		{"san jose", "San Francisco"},
		{"new york", "New York"},
		{"nyc", "New York"},
		{"manhattan", "New York"},
		{"brooklyn", "New York"},
		{"seattle", "Seattle"},
		{"austin", "Austin"},
		{"boston", "Boston"},
		{"los angeles", "Los Angeles"},
		{"la", "Los Angeles"},
		{"chicago", "Chicago"},
		{"denver", "Denver"},
		{"atlanta", "Atlanta"},
		{"remote", "Remote"},
	}
}

func defaultSeniorityLevels() []SeniorityLevel {
	return []SeniorityLevel{
		{"C-Level", []string{"chief", "cto", "cio", "cao", "cdo", "head of ai", "vp of ai"}},
		{"VP", []string{"vice president", "vp ", " vp,", "vp,"}},
		{"Director", []string{"director", "head of"}},
		{"Senior", []string{"senior", "sr.", "sr ", "staff", "principal", "lead"}},
		{"Mid", []string{"mid", "ii", "iii"}},
		{"Entry", []string{"junior", "jr.", "jr ", "entry", "associate", " i ", " 1 "}},
	}
}

func defaultTechKeywords() []string {
	return []string{
		"software", "saas", "tech", "ai", "cloud", "data", "platform",
		"digital", "cyber", "fintech", "analytics", "machine learning",
		"automation", "api", "infrastructure", "labs", "systems",
		"intelligence", "robotics", "computing", "neural", "cognitive",
	}
}

func defaultCompanyStages() []CompanyStage {
	return []CompanyStage{
		{"Startup (Seed)", []string{"seed", "pre-seed", "angel"}},
		{"Startup (Series A-B)", []string{"series a", "series b", "early stage", "early-stage"}},
		{"Growth (Series C+)", []string{"series c", "series d", "series e", "growth stage", "growth-stage", "late stage"}},
		{"Enterprise/Public", []string{"fortune 500", "fortune500", "public company", "nasdaq", "nyse", "enterprise"}},
	}
}

func defaultBuzzwords() []string {
	return []string{
		"production-ready", "scalable", "enterprise-grade", "state-of-the-art",
		"cutting-edge", "innovative", "groundbreaking", "revolutionary",
		"next-generation", "world-class", "fast-paced", "dynamic",
		"collaborative", "cross-functional", "end-to-end", "full-stack",
	}
}

func defaultRedFlags() []RedFlagGroup {
	return []RedFlagGroup{
		{"vague_compensation", []string{"competitive salary", "competitive compensation", "commensurate with experience"}},
		{"unrealistic_requirements", []string{"10+ years", "10 years", "phd required", "must have phd"}},
		{"overwork_signals", []string{"wear many hats", "fast-paced", "startup mentality", "hustle", "24/7"}},
		{"vague_role", []string{"various duties", "other duties as assigned", "jack of all trades"}},
	}
}
