package heuristic

import (
	"path"
	"regexp"
	"strings"
)

// tagRule attaches Tag when re matches. A non-empty exts restricts the
// rule to those file extensions.
type tagRule struct {
	Tag  string
	re   *regexp.Regexp
	exts []string
}

func (r tagRule) applies(ext string) bool {
	if len(r.exts) == 0 {
		return true
	}
	for _, e := range r.exts {
		if e == ext {
			return true
		}
	}
	return false
}

var (
	jsExts   = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".vue", ".svelte"}
	pyExts   = []string{".py"}
	goExts   = []string{".go"}
	rustExts = []string{".rs"}
	cppExts  = []string{".cc", ".cpp", ".cxx", ".hpp", ".h"}
	jvmExts  = []string{".java", ".kt", ".kts", ".scala"}
)

func rule(tag, expr string, exts ...string) tagRule {
	return tagRule{Tag: tag, re: regexp.MustCompile(expr), exts: exts}
}

// idiomRules are evaluated in order; every matching rule contributes its tag.
var idiomRules = []tagRule{
	rule("OOP/Classes", `\bclass\s+\w+`),
	rule("Functions", `\bfunction\s*\*?\s*\w+\s*\(|\bdef\s+\w+\s*\(|\bfunc\s+(?:\([^)]*\)\s*)?\w+\s*\(|\bfn\s+\w+|\bfun\s+\w+\s*\(`),
	rule("Async/Promises", `\basync\b|\bawait\b|\bPromise\b|\.then\s*\(`),
	rule("ES6 Modules", `(?m)^\s*(?:import\s+[\w*{].*\bfrom\s+['"]|export\s+(?:default|const|let|function|class|async|\{))`, jsExts...),
	rule("SQL/Database", `(?i)\bselect\s+[\w*.,\s]+\s+from\s+\w+|\binsert\s+into\b|\bcreate\s+table\b|\b(?:mongoose|sequelize|prisma|typeorm|sqlalchemy|gorm|diesel|knex)\b|database/sql`),
	rule("Testing", `\b(?:describe|it|test)\s*\(\s*['"]|\bexpect\s*\(|\bfunc\s+Test\w+\s*\(|#\[test\]|@Test\b|\bimport\s+(?:unittest|pytest)\b|\bassert(?:Equal|True|False|That)?\s*\(`),
	rule("React Components", `from\s+['"]react['"]|require\(\s*['"]react['"]\s*\)|\bReact\.(?:Component|createElement)\b|return\s*\(\s*<[A-Za-z]`, jsExts...),
	rule("React Hooks", `\buse(?:State|Effect|Context|Reducer|Memo|Callback|Ref|LayoutEffect)\s*\(`, jsExts...),
	rule("Express.js", `require\(\s*['"]express['"]\s*\)|from\s+['"]express['"]|\bexpress\(\)`, jsExts...),
	rule("Django", `\bfrom\s+django\b|\bimport\s+django\b|\bmodels\.Model\b`, pyExts...),
	rule("Flask", `\bfrom\s+flask\s+import\b|\bFlask\(__name__\)`, pyExts...),
	rule("FastAPI", `\bfrom\s+fastapi\s+import\b|\bFastAPI\(`, pyExts...),
	rule("Spring Framework", `@(?:SpringBootApplication|RestController|Controller|Service|Repository|Autowired|RequestMapping|GetMapping|PostMapping|Component)\b`, jvmExts...),
	rule("Go Concurrency", `\bgo\s+func\s*\(|\bgo\s+[\w.]+\(|\bchan\s+\w+|\bmake\(\s*chan\b|sync\.(?:WaitGroup|Mutex|RWMutex|Once)|\bselect\s*\{`, goExts...),
	rule("Go Error Handling", `if\s+err\s*!=\s*nil|errors\.(?:New|Is|As)\(|fmt\.Errorf\(`, goExts...),
	rule("Rust Ownership/Borrowing", `&mut\s+\w+|&'\w+|\bBox<|\bRc<|\bArc<|\bmove\s*\|`, rustExts...),
	rule("Rust Traits", `\btrait\s+\w+|\bimpl\s*(?:<[^>]*>\s*)?[\w:]+(?:<[^>]*>)?\s+for\s+\w+`, rustExts...),
	rule("Rust Error Handling", `\bResult<|\bOption<|\?;|\.unwrap\(\)|\.expect\(|\bthiserror\b|\banyhow\b`, rustExts...),
	rule("C++ STL", `std::(?:vector|map|unordered_map|set|string|shared_ptr|unique_ptr|array|deque|list|optional)\b|#include\s*<(?:vector|map|string|memory|algorithm|unordered_map)>`, cppExts...),
	rule("C++ Templates", `\btemplate\s*<`, cppExts...),
	rule("Docker/Containers", `(?i)\bdocker(?:file|-compose)?\b|(?m:^\s*(?:-\s*)?image:\s*\S+)`),
	rule("Terraform/IaC", `\bresource\s+"\w+"\s+"\w+"|\bterraform\s*\{|\bprovider\s+"\w+"|AWSTemplateFormatVersion|\bpulumi\b`),
	rule("Kubernetes", `(?m)^\s*(?:apiVersion:\s*\S+|kind:\s*(?:Deployment|Service|Pod|ConfigMap|Ingress|StatefulSet|DaemonSet|Job|CronJob)\b)`),
	rule("GraphQL", `\bgql\b|\bgraphql\b|\btype\s+Query\s*\{|\bApolloServer\b`),
	rule("REST API", `\b(?:app|router)\.(?:get|post|put|delete|patch)\s*\(|@(?:Get|Post|Put|Delete|Request)Mapping\b|@app\.(?:get|post|put|delete|route)\b|\bHandleFunc\(|\baxios\.|\bfetch\(|\bhttp\.(?:Get|Post)\(`),
	rule("Dependency Injection", `@(?:Injectable|Inject|Autowired)\b|\bconstructor\s*\(\s*(?:private|public|protected|readonly)\s|\bDepends\(|\bwire\.Build\(|\bfx\.Provide\(`),
	rule("Type Annotations", `:\s*(?:string|number|boolean|str|int|float|bool|any|void|unknown)\b|\)\s*->\s*[\w\[\]., ]+:`, ".ts", ".tsx", ".py"),
	rule("Decorators", `(?m)^\s*@\w+(?:\.\w+)*(?:\(|\s*$)`, ".py", ".ts", ".tsx", ".js", ".jsx"),
	rule("Generators", `\bfunction\s*\*|\byield\b`),
}

// architectureRules look for structural roles rather than language features.
var architectureRules = []tagRule{
	rule("Server Bootstrap", `\.listen\s*\(|\bcreateServer\s*\(|\bexpress\(\)|http\.ListenAndServe|\buvicorn\.run\(|\bapp\.run\(|SpringApplication\.run|WebApplication\.CreateBuilder|HttpServer::new`),
	rule("Routing", `\b(?:app|router|r|mux|e)\.(?:get|post|put|delete|patch|all|route|HandleFunc|Handle|GET|POST|PUT|DELETE)\s*\(|@(?:Get|Post|Put|Delete|Request)Mapping\b|@app\.(?:get|post|put|delete|route)\b|\bexpress\.Router\(|\burlpatterns\b`),
	rule("Middleware", `(?i)\bmiddleware\b|\b(?:app|router)\.use\s*\(|\(\s*req\s*,\s*res\s*,\s*next\s*\)`),
	rule("MVC Controller", `\b\w+Controller\b|@(?:Rest)?Controller\b`),
	rule("Service Layer", `\b(?:class|struct|interface|type)\s+\w+Service\b|@Service\b`),
	rule("Repository Pattern", `\b(?:class|struct|interface|type)\s+\w+Repository\b|@Repository\b|\bRepository<`),
	rule("Reactive Streams", `\b(?:Observable|BehaviorSubject|Flux|Mono|Flowable)\b|\.subscribe\(|from\s+['"]rxjs`),
	rule("Hook-based State", `\buse(?:State|Reducer|Store|Selector)\s*\(|\bcreateContext\(`),
	rule("Error Handling", `\btry\s*[:{]|\bcatch\s*\(|\bexcept\b|\bif\s+err\s*!=\s*nil|\.catch\(|\bResult<|\brescue\b`),
	rule("Logging", `\bconsole\.(?:log|error|warn|info|debug)\(|\blogger\.\w+\(|\blogging\.\w+\(|\blog\.(?:Print|Fatal|Info|Error|Warn|Debug)\w*\(|\bslog\.\w+\(|\bLog\.\w+\(|System\.out\.println`),
	rule("Configuration", `process\.env\b|os\.(?:Getenv|environ)|\bdotenv\b|\bconfig\.(?:get|load|read)\w*\(|\bviper\.|\bkoanf\.|@Value\(|\bConfigurationManager\b|std::env::var`),
	rule("Event-Driven", `\.on\(\s*['"]\w+['"]|\.emit\(|\bEventEmitter\b|addEventListener\(|\.publish\(|@EventListener\b`),
	rule("Dependency Injection Container", `\bcontainer\.(?:register|resolve|bind|get)\(|@(?:Injectable|Module)\(|\binversify\b|\bServiceCollection\b|\bfx\.New\(|\bwire\.Build\(`),
	rule("MCP Server", `@modelcontextprotocol/sdk|\bMcpServer\b|\bserver\.tool\(|\bmcp\.(?:NewServer|AddTool)\(|\bFastMCP\(|ListToolsRequestSchema|CallToolRequestSchema`),
}

// Idioms returns the idiom tags whose pattern matches the file.
func Idioms(filePath, content string) []string {
	return match(idiomRules, filePath, content)
}

// Architecture returns the architecture tags whose pattern matches the file.
func Architecture(filePath, content string) []string {
	return match(architectureRules, filePath, content)
}

func match(rules []tagRule, filePath, content string) []string {
	ext := strings.ToLower(path.Ext(filePath))
	var tags []string
	for _, r := range rules {
		if r.applies(ext) && r.re.MatchString(content) {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}

// entryPathTokens mark a file as a probable entry point by name alone.
var entryPathTokens = []string{"index", "main", "app", "server", "program"}

// IsEntryPoint reports whether the file looks like a program start: its
// path contains a conventional entry name or its content matches one of
// its language's start signatures.
func IsEntryPoint(filePath, content string) bool {
	lower := strings.ToLower(filePath)
	for _, tok := range entryPathTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	lang, ok := LookupLanguage(filePath)
	if !ok {
		return false
	}
	for _, sig := range lang.entryPoints {
		if sig.MatchString(content) {
			return true
		}
	}
	return false
}
