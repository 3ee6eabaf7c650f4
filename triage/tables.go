package triage

import "github.com/linesmerrill/safedesk-api/models"

const (
	// maxKeywords caps the number of trigger phrases reported per analysis
	maxKeywords = 10
	// lengthThreshold is the description length, in characters, above which a case is at
	// least medium severity
	lengthThreshold = 200
	// defaultSpecialization is the directory tag used for any case type not in specializations
	defaultSpecialization = "employment-law"
)

type caseTrigger struct {
	caseType models.CaseType
	phrases  []string
}

// caseTriggers is ordered; earlier entries win ties and lead keyword extraction.
var caseTriggers = []caseTrigger{
	{models.CaseWorkplaceHarassment, []string{
		"harassment", "harassed", "harassing", "bully", "bullying", "hostile", "intimidation",
		"verbal abuse", "workplace", "colleague", "boss", "manager", "supervisor",
	}},
	{models.CaseSexualHarassment, []string{
		"sexual", "unwanted advances", "inappropriate touching", "assault", "molest",
		"groping", "sexual comments", "sexual jokes", "quid pro quo", "sexual favor",
	}},
	{models.CaseDiscrimination, []string{
		"discrimination", "discriminate", "racist", "racism", "sexist", "sexism",
		"age discrimination", "gender discrimination", "racial", "bias", "unfair treatment",
		"religion", "disability", "pregnant", "pregnancy",
	}},
	{models.CaseRetaliation, []string{
		"retaliation", "retaliate", "fired after complaint", "punished", "demoted",
		"revenge", "payback", "whistleblower",
	}},
	{models.CaseWrongfulTermination, []string{
		"fired", "terminated", "dismissal", "wrongful termination", "unfair firing",
		"laid off", "let go", "termination without cause",
	}},
	{models.CaseWageDispute, []string{
		"unpaid", "salary", "wages", "overtime", "payment", "compensation",
		"paycheck", "minimum wage", "wage theft", "not paid",
	}},
}

var highSeverityPhrases = []string{
	"assault", "physical", "threatened", "threat", "violence", "violent",
	"police", "criminal", "hospital", "injury", "hurt", "weapon",
	"stalking", "fear for safety", "rape", "sexual assault", "suicide",
}

var mediumSeverityPhrases = []string{
	"repeated", "multiple times", "ongoing", "persistent", "daily",
	"documented", "evidence", "witnesses", "complaint filed", "hr involved",
	"mental health", "anxiety", "depression", "stress", "unable to work",
}

// lowSeverityPhrases are the cues of a minor, one-off incident. Low is also the fallback level,
// so they are reported as signals but never change the resolved severity.
var lowSeverityPhrases = []string{
	"once", "first time", "minor", "uncomfortable", "awkward",
	"unsure", "not sure", "happened yesterday", "recent", "single incident",
}

var specializations = map[models.CaseType]string{
	models.CaseWorkplaceHarassment: "workplace-harassment",
	models.CaseSexualHarassment:    "sexual-harassment",
	models.CaseDiscrimination:      "discrimination",
	models.CaseRetaliation:         "employment-law",
	models.CaseWrongfulTermination: "employment-law",
	models.CaseWageDispute:         "labor-law",
	models.CaseOther:               "employment-law",
}

// SpecializationFor returns the directory specialization tag that serves a case type
func SpecializationFor(caseType models.CaseType) string {
	if tag, ok := specializations[caseType]; ok {
		return tag
	}
	return defaultSpecialization
}
