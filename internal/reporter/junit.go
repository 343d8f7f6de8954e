package reporter

import (
	"encoding/xml"

	"github.com/flowcap/flowcap/internal/scenario"
)

// junitSuite/junitCase mirror the subset of the JUnit XML schema CI tools
// actually read: one testsuite per scenario, one testcase per step, a
// <failure> child on failed steps carrying the step's error message.
type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Time     float64     `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Skipped   *struct{}     `xml:"skipped,omitempty"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// RenderJUnit renders result as a single JUnit testsuite, one testcase per
// flattened step, in execution order.
func RenderJUnit(result *scenario.ScenarioResult) ([]byte, error) {
	suite := junitSuite{
		Name:  result.Title,
		Tests: len(result.Steps),
		Time:  result.Duration.Seconds(),
	}

	for _, sr := range result.Steps {
		c := junitCase{
			Name:      sr.Name,
			Classname: result.Title + "." + sr.Type,
			Time:      sr.Duration.Seconds(),
		}
		switch sr.Status {
		case scenario.StepFailed:
			suite.Failures++
			c.Failure = &junitFailure{Message: sr.Error, Text: sr.Error}
		case scenario.StepSkipped:
			c.Skipped = &struct{}{}
		}
		suite.Cases = append(suite.Cases, c)
	}

	out, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
