package entities

// InterestCategory agrupa os interesses em categorias
type InterestCategory string

const (
	InterestCategoryTech      InterestCategory = "TECH"
	InterestCategoryBusiness  InterestCategory = "BUSINESS"
	InterestCategoryLifestyle InterestCategory = "LIFESTYLE"
	InterestCategorySocial    InterestCategory = "SOCIAL"
	InterestCategoryContent   InterestCategory = "CONTENT"
)

// Interest representa uma área de interesse de um perfil ou de um post
type Interest string

const (
	InterestAI         Interest = "AI"
	InterestBlockchain Interest = "BLOCKCHAIN"
	InterestIoT        Interest = "IOT"
	InterestBigData    Interest = "BIG_DATA"

	InterestFintech   Interest = "FINTECH"
	InterestECommerce Interest = "E_COMMERCE"
	InterestMarketing Interest = "MARKETING"
	InterestStartup   Interest = "STARTUP"

	InterestHealthcare Interest = "HEALTHCARE"
	InterestFood       Interest = "FOOD"
	InterestTravel     Interest = "TRAVEL"
	InterestFashion    Interest = "FASHION"

	InterestEducation    Interest = "EDUCATION"
	InterestEnvironment  Interest = "ENVIRONMENT"
	InterestSocialImpact Interest = "SOCIAL_IMPACT"

	InterestGame          Interest = "GAME"
	InterestMedia         Interest = "MEDIA"
	InterestEntertainment Interest = "ENTERTAINMENT"
)

var interestCategories = map[Interest]InterestCategory{
	InterestAI:            InterestCategoryTech,
	InterestBlockchain:    InterestCategoryTech,
	InterestIoT:           InterestCategoryTech,
	InterestBigData:       InterestCategoryTech,
	InterestFintech:       InterestCategoryBusiness,
	InterestECommerce:     InterestCategoryBusiness,
	InterestMarketing:     InterestCategoryBusiness,
	InterestStartup:       InterestCategoryBusiness,
	InterestHealthcare:    InterestCategoryLifestyle,
	InterestFood:          InterestCategoryLifestyle,
	InterestTravel:        InterestCategoryLifestyle,
	InterestFashion:       InterestCategoryLifestyle,
	InterestEducation:     InterestCategorySocial,
	InterestEnvironment:   InterestCategorySocial,
	InterestSocialImpact:  InterestCategorySocial,
	InterestGame:          InterestCategoryContent,
	InterestMedia:         InterestCategoryContent,
	InterestEntertainment: InterestCategoryContent,
}

func (i Interest) Valid() bool {
	_, ok := interestCategories[i]
	return ok
}

// Category retorna a categoria do interesse
func (i Interest) Category() InterestCategory {
	return interestCategories[i]
}

// InterestsByCategory retorna os interesses de uma categoria
func InterestsByCategory(category InterestCategory) []Interest {
	result := make([]Interest, 0, 4)
	for interest, c := range interestCategories {
		if c == category {
			result = append(result, interest)
		}
	}
	return result
}

// TechStack representa uma tecnologia declarada por um perfil ou exigida por um post
type TechStack string

const (
	TechStackJava        TechStack = "JAVA"
	TechStackSpring      TechStack = "SPRING"
	TechStackKotlin      TechStack = "KOTLIN"
	TechStackGo          TechStack = "GO"
	TechStackPython      TechStack = "PYTHON"
	TechStackDjango      TechStack = "DJANGO"
	TechStackNodeJS      TechStack = "NODEJS"
	TechStackJavaScript  TechStack = "JAVASCRIPT"
	TechStackTypeScript  TechStack = "TYPESCRIPT"
	TechStackReact       TechStack = "REACT"
	TechStackVue         TechStack = "VUE"
	TechStackNextJS      TechStack = "NEXTJS"
	TechStackSwift       TechStack = "SWIFT"
	TechStackFlutter     TechStack = "FLUTTER"
	TechStackReactNative TechStack = "REACT_NATIVE"
	TechStackMySQL       TechStack = "MYSQL"
	TechStackPostgreSQL  TechStack = "POSTGRESQL"
	TechStackMongoDB     TechStack = "MONGODB"
	TechStackRedis       TechStack = "REDIS"
	TechStackAWS         TechStack = "AWS"
	TechStackDocker      TechStack = "DOCKER"
	TechStackKubernetes  TechStack = "KUBERNETES"
	TechStackFigma       TechStack = "FIGMA"
	TechStackTensorFlow  TechStack = "TENSORFLOW"
	TechStackPyTorch     TechStack = "PYTORCH"
)

var techStacks = map[TechStack]struct{}{
	TechStackJava: {}, TechStackSpring: {}, TechStackKotlin: {}, TechStackGo: {},
	TechStackPython: {}, TechStackDjango: {}, TechStackNodeJS: {}, TechStackJavaScript: {},
	TechStackTypeScript: {}, TechStackReact: {}, TechStackVue: {}, TechStackNextJS: {},
	TechStackSwift: {}, TechStackFlutter: {}, TechStackReactNative: {}, TechStackMySQL: {},
	TechStackPostgreSQL: {}, TechStackMongoDB: {}, TechStackRedis: {}, TechStackAWS: {},
	TechStackDocker: {}, TechStackKubernetes: {}, TechStackFigma: {}, TechStackTensorFlow: {},
	TechStackPyTorch: {},
}

func (t TechStack) Valid() bool {
	_, ok := techStacks[t]
	return ok
}
