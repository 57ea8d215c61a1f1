package tagging

// DefaultRules returns the built-in keyword rule set. Strict rules gate
// generic keywords on nearby role-specific context so that company boilerplate
// ("We are a B2B company") does not tag every posting.
func DefaultRules() []Rule {
	return []Rule{
		// Software engineering languages
		NewRule(`\brust\b`, "Rust"),
		NewRule(`\bpython\b`, "Python"),
		NewRule(`\bjavascript\b|(^|[^.])\bjs\b`, "JavaScript"),
		NewRule(`\btypescript\b|(^|[^.])\bts\b`, "TypeScript"),
		NewRule(`\bgolang\b`, "Go"),
		NewRule(`\bgo\b`, "Go").WithContext(`\blanguage\b`, 5),
		NewRule(`\bjava\b`, "Java").WithForbiddenDistance(`\bscript\b`, 1),
		NewRule(`\bc\+\+`, "C++"),
		NewRule(`\bc#`, "C#"),
		NewRule(`\bruby\b`, "Ruby"),
		NewRule(`\bphp\b`, "PHP"),
		NewRule(`\bswift\b`, "Swift"),
		NewRule(`\bkotlin\b`, "Kotlin"),
		NewRule(`\bscala\b`, "Scala"),
		NewRule(`\belixir\b`, "Elixir"),

		// Frameworks and libraries
		NewRule(`\breact\b`, "React"),
		NewRule(`\bvue\b`, "Vue"),
		NewRule(`\bangular\b`, "Angular"),
		NewRule(`\bsvelte\b`, "Svelte"),
		NewRule(`\bnext\.?js\b`, "Next.js"),
		NewRule(`\bnuxt\b`, "Nuxt"),
		NewRule(`\bnode\.?js\b`, "Node.js"),
		NewRule(`\bdjango\b`, "Django"),
		NewRule(`\bflask\b`, "Flask"),
		NewRule(`\bfastapi\b`, "FastAPI"),
		NewRule(`\bspring\b`, "Spring"),
		NewRule(`\.net\b`, ".NET"),
		NewRule(`\brails\b`, "Ruby on Rails"),
		NewRule(`\blaravel\b`, "Laravel"),
		NewRule(`\btailwind\b`, "Tailwind"),
		NewRule(`\btensorflow\b`, "TensorFlow"),
		NewRule(`\bpytorch\b`, "PyTorch"),

		// Infrastructure and tools
		NewRule(`\bdocker\b`, "Docker"),
		NewRule(`\bkubernetes\b|k8s\b`, "Kubernetes"),
		NewRule(`\baws\b`, "AWS"),
		NewRule(`\bazure\b`, "Azure"),
		NewRule(`\bgcp\b|google cloud\b`, "GCP"),
		NewRule(`\bterraform\b`, "Terraform"),
		NewRule(`\bansible\b`, "Ansible"),
		NewRule(`\blinux\b`, "Linux"),
		NewRule(`\bgit\b`, "Git"),
		NewRule(`\bci/cd\b|\bcontinuous (integration|delivery|deployment)\b`, "CI/CD"),
		NewRule(`\bsql\b`, "SQL"),
		NewRule(`\bnosql\b`, "NoSQL"),
		NewRule(`\bredis\b`, "Redis"),
		NewRule(`\bkafka\b`, "Kafka"),
		NewRule(`\belasticsearch\b`, "Elasticsearch"),
		NewRule(`\bgraphql\b`, "GraphQL"),
		NewRule(`\brest\b`, "REST"),
		NewRule(`\bgrpc\b`, "gRPC"),

		// Data and analytics
		NewRule(`\bdata scien(ce|tist)\b`, "Data Science"),
		NewRule(`\bdata engineer(ing)?\b`, "Data Engineering"),
		NewRule(`\bmachine learning\b|\bml\b`, "Machine Learning"),
		NewRule(`\bartificial intelligence\b|\bai\b`, "AI"),
		NewRule(`\bllm\b|\blarge language model\b`, "LLM"),
		NewRule(`\bnlp\b`, "NLP"),
		NewRule(`\bcomputer vision\b`, "Computer Vision"),
		NewRule(`\bstatistics\b`, "Statistics"),
		NewRule(`\bpandas\b`, "Pandas"),
		NewRule(`\bnumpy\b`, "NumPy"),
		NewRule(`\btableau\b`, "Tableau"),
		NewRule(`\bpower bi\b`, "Power BI"),
		NewRule(`\bsql server\b`, "SQL Server"),
		NewRule(`\bpostgresql\b|\bpostgres\b`, "PostgreSQL"),
		NewRule(`\bmongodb\b`, "MongoDB"),
		NewRule(`\bsnowflake\b`, "Snowflake"),
		NewRule(`\bspark\b`, "Spark"),
		NewRule(`\bairflow\b`, "Airflow"),
		NewRule(`\bdbt\b`, "dbt"),

		// Product and design
		NewRule(`\bproduct manage(r|ment)\b|\bpm\b`, "Product Management"),
		NewRule(`\bproduct owner\b`, "Product Owner"),
		NewRule(`\bui\b|\buser interface\b`, "UI"),
		NewRule(`\bux\b|\buser experience\b`, "UX"),
		NewRule(`\bfigma\b`, "Figma"),
		NewRule(`\bsketch\b`, "Sketch"),
		NewRule(`\bgraphic design\b`, "Graphic Design"),
		NewRule(`\buser research\b`, "User Research"),
		NewRule(`\bdesign system\b`, "Design Systems"),

		// Marketing and sales, gated on role-specific context
		NewRule(`\bseo\b`, "SEO").
			WithContext(`\b(specialist|optimization|ranking|keyword|content|audit|technical)\b`, 15),
		NewRule(`\bsem\b`, "SEM").
			WithContext(`\b(paid|search|marketing|campaign|ppc|ad)\b`, 15),
		NewRule(`\bcontent marketing\b`, "Content Marketing"),
		NewRule(`\bcopywriting\b`, "Copywriting"),
		NewRule(`\bsocial media\b`, "Social Media"),
		NewRule(`\bbusiness development\b|\bbdr\b|\bsdr\b`, "Business Development"),
		NewRule(`\baccount manage(r|ment)\b`, "Account Management"),
		NewRule(`\bcrm\b`, "CRM"),
		NewRule(`\bsalesforce\b`, "Salesforce"),
		NewRule(`\bhubspot\b`, "HubSpot"),
		NewRule(`\bugc\b|user generated content\b`, "UGC").
			WithContext(`\b(marketing|content|campaign|social|creator)\b`, 15),
		NewRule(`\bcro\b|conversion rate optimization\b`, "CRO").
			WithContext(`\b(optimization|experiment|testing|growth|marketing)\b`, 15),
		NewRule(`\bppc\b|pay[-\s]per[-\s]click\b`, "PPC").
			WithContext(`\b(campaign|ad|paid|marketing|search)\b`, 15),
		NewRule(`\bgtm\b|go[-\s]to[-\s]market\b`, "Go-to-Market").
			WithContext(`\b(launch|product|market|sales)\b`, 15),
		NewRule(`\bb2b\b`, "B2B").
			WithContext(`\b(sales|marketing|saas|client|account|business)\b`, 15),
		NewRule(`\bb2c\b`, "B2C").
			WithContext(`\b(consumer|marketing|sales|brand|customer|retail)\b`, 15),
		NewRule(`\binfluencer\b`, "Influencer Marketing"),
		NewRule(`\baffiliate\b`, "Affiliate Marketing").
			WithContext(`\b(program|marketing|network|partner)\b`, 15),

		// Finance and accounting
		NewRule(`\baccounting\b`, "Accounting").
			WithContext(`\b(staff|clerk|financial|ledger|payable|receivable|reconciliation|cpa|intern)\b`, 15),
		NewRule(`\bcpa\b`, "CPA"),
		NewRule(`\baudit\b`, "Audit").
			WithContext(`\b(internal|external|financial|risk|compliance|it|process|assurance)\b`, 15),
		NewRule(`\btax\b`, "Tax").
			WithContext(`\b(compliance|return|filing|income|corporate|sales|provision|indirect|salt)\b`, 15),
		NewRule(`\binvestment banking\b`, "Investment Banking"),
		NewRule(`\btrading\b`, "Trading"),
		NewRule(`\bfp&a\b`, "FP&A"),
		NewRule(`\btreasury\b`, "Treasury"),
		NewRule(`\bventure capital\b|\bvc\b`, "Venture Capital"),
		NewRule(`\bprivate equity\b|\bpe\b`, "Private Equity"),
		NewRule(`\bfintech\b|\bfin[-\s]tech\b`, "FinTech"),
		NewRule(`\bpayments?\b`, "Payments").
			WithContext(`\b(processing|gateway|platform|infrastructure|fraud|card)\b`, 15),

		// Operations and HR
		NewRule(`\bsupply chain\b`, "Supply Chain"),
		NewRule(`\blogistics\b`, "Logistics"),
		NewRule(`\bprocurement\b`, "Procurement"),
		NewRule(`\bproject manage(r|ment)\b`, "Project Management"),
		NewRule(`\bprogram manage(r|ment)\b`, "Program Management"),
		NewRule(`\bagile\b|\bscrum\b`, "Agile"),
		NewRule(`\bhuman resources\b|\bhr\b`, "Human Resources"),
		NewRule(`\brecruiting\b|\brecruiter\b`, "Recruiting"),
		NewRule(`\btalent acquisition\b`, "Talent Acquisition"),
		NewRule(`\bpeople ops\b`, "People Ops"),
		NewRule(`\bcustomer success\b`, "Customer Success"),
		NewRule(`\bcustomer support\b|\bhelp ?desk\b`, "Customer Support"),

		// Legal
		NewRule(`\bcompliance\b`, "Compliance").
			WithContext(`\b(regulatory|legal|risk|policy|standard|gdpr|hipaa|soc2|analyst)\b`, 15),
		NewRule(`\blitigation\b`, "Litigation"),
		NewRule(`\bcontract law\b`, "Contract Law"),
		NewRule(`\bintellectual property\b|\bip\b`, "Intellectual Property"),
		NewRule(`\bparalegal\b`, "Paralegal"),
		NewRule(`\battorney\b`, "Attorney"),
		NewRule(`\blegal ?tech\b`, "LegalTech"),

		// Hardware and science
		NewRule(`\belectrical engineering\b`, "Electrical Engineering"),
		NewRule(`\bmechanical engineering\b`, "Mechanical Engineering"),
		NewRule(`\bcivil engineering\b`, "Civil Engineering"),
		NewRule(`\bchemical engineering\b`, "Chemical Engineering"),
		NewRule(`\bbiomedical\b`, "Biomedical"),
		NewRule(`\bembedded\b`, "Embedded Systems").
			WithContext(`\b(systems?|software|firmware|c|linux|device)\b`, 10),
		NewRule(`\brobotics\b`, "Robotics"),
		NewRule(`\bhealth ?tech\b|\bdigital health\b`, "HealthTech"),
		NewRule(`\bbiotech(nology)?\b`, "Biotech"),

		// Security
		NewRule(`\bcybersecurity\b|\binformation security\b|\binfosec\b`, "Security"),
		NewRule(`\bpenetration testing\b|\bpentest\b`, "Penetration Testing"),
		NewRule(`\bsoc ?2\b`, "SOC 2"),

		// General and benefits
		NewRule(`\blgbtq(\+|\b)`, "LGBTQ+ Friendly"),
		NewRule(`\bpaid (internship|role|position)\b`, "Paid"),
		NewRule(`\bvisa sponsorship\b`, "Visa Sponsorship"),
		NewRule(`\bequity\b`, "Equity").
			WithContext(`\b(stock|options?|grant|compensation|package|rsu)\b`, 10),
		NewRule(`\bremote\b`, "Remote"),
		NewRule(`\bhybrid\b`, "Hybrid"),
	}
}
