package media

// Quantize reduces a duration list to the greatest common divisor of its
// entries and the number of quantum slots each frame occupies.
//
// Non-positive entries do not take part in the reduction and get a repeat
// count of zero, so the frame is skipped when the sequence is expanded.
// A list of length zero or one, or one without any positive entry, yields a
// static schedule.
func Quantize(durations DurationList) RepeatSchedule {
	if len(durations) <= 1 {
		return RepeatSchedule{Repeats: staticRepeats(len(durations))}
	}

	quantum := 0
	for _, d := range durations {
		if d > 0 {
			quantum = gcd(quantum, d)
		}
	}
	if quantum == 0 {
		return RepeatSchedule{Repeats: make([]int, len(durations))}
	}

	repeats := make([]int, len(durations))
	for i, d := range durations {
		if d > 0 {
			repeats[i] = d / quantum
		}
	}
	return RepeatSchedule{Quantum: quantum, Repeats: repeats}
}

func staticRepeats(n int) []int {
	if n == 0 {
		return nil
	}
	return []int{1}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
