package version

const Value = "1.0.0"

func Generator() string {
	return "KRS/" + Value + " (kernel/OS rubric scanner)"
}
