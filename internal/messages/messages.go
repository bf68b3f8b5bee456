package messages

import (
	"fmt"
	"strings"
)

// ComponentGuidance is shown for components scoring below the follow-up
// threshold, in the console summary and the HTML remediation table.
type ComponentGuidance struct {
	Title    string
	Guidance string
	Fix      string
}

var componentGuidance = map[string]ComponentGuidance{
	"boot": {
		Title:    "Boot & Early Initialization",
		Guidance: "Little or no bootloader handoff and kernel entry code was recognized.",
		Fix:      "Implement a multiboot (or equivalent) entry path, early hardware setup, and a kernel_main handoff sequence.",
	},
	"scheduling": {
		Title:    "Scheduling",
		Guidance: "Scheduler and context-switch machinery appears thin or absent.",
		Fix:      "Add a runqueue, a context switch routine, and a timer-driven preemption path; yield and priority handling round it out.",
	},
	"process_thread_management": {
		Title:    "Process & Thread Management",
		Guidance: "Process/thread lifecycle handling was barely detected.",
		Fix:      "Implement task creation and teardown (fork/exec/exit or equivalents), PID allocation, and per-task control blocks.",
	},
	"memory": {
		Title:    "Memory Management",
		Guidance: "Physical memory management and kernel allocation code is sparse.",
		Fix:      "Add a frame allocator, a kernel heap (kmalloc/kfree), and page-granular bookkeeping.",
	},
	"interrupt_handling": {
		Title:    "Interrupt Handling",
		Guidance: "Interrupt and exception dispatch shows little implementation depth.",
		Fix:      "Build an IDT (or vector table), IRQ registration, and distinct trap/exception handlers.",
	},
	"system_call_interface": {
		Title:    "System Call Interface",
		Guidance: "No substantial user/kernel boundary was recognized.",
		Fix:      "Implement a syscall entry gate, argument validation, and a dispatch table for user-mode requests.",
	},
	"basic_io": {
		Title:    "Basic I/O",
		Guidance: "Console/serial input and output support looks minimal.",
		Fix:      "Add UART or VGA console output plus keyboard input with a small read/write interface.",
	},
	"synchronisation": {
		Title:    "Synchronisation",
		Guidance: "Few locking or synchronisation primitives were found.",
		Fix:      "Provide spinlocks, mutexes, and semaphores with atomic underpinnings; guard shared kernel state with them.",
	},
	"timers_clock": {
		Title:    "Timers & Clock",
		Guidance: "Timer programming and timekeeping code is limited.",
		Fix:      "Program the timer hardware (PIT/HPET or equivalent), maintain a tick count, and expose uptime.",
	},
	"protection": {
		Title:    "Protection",
		Guidance: "Privilege separation and memory protection are weakly evidenced.",
		Fix:      "Separate supervisor and user privilege levels and enforce memory protection on the boundary.",
	},
	"virtual_memory": {
		Title:    "Virtual Memory",
		Guidance: "Virtual address space management appears incomplete.",
		Fix:      "Implement page tables per address space, a page-fault handler, and mmap-style mappings; demand paging and swap extend it.",
	},
	"driver_framework": {
		Title:    "Driver Framework",
		Guidance: "No coherent device driver model was detected.",
		Fix:      "Define a driver registration interface, bus/device enumeration (PCI or platform), and probe/remove hooks.",
	},
	"filesystem": {
		Title:    "Filesystem",
		Guidance: "Filesystem structures and a VFS layer are largely missing.",
		Fix:      "Add a VFS abstraction (inodes, dentries, mounts) and at least one concrete filesystem behind it.",
	},
	"networking": {
		Title:    "Networking",
		Guidance: "Network stack evidence is thin.",
		Fix:      "Implement an ethernet/ARP/IP path with a socket-style interface; TCP/UDP complete the stack.",
	},
	"ipc": {
		Title:    "Inter-Process Communication",
		Guidance: "IPC mechanisms were barely recognized.",
		Fix:      "Provide at least pipes or message queues plus signals or shared memory with proper synchronisation.",
	},
	"security": {
		Title:    "Security",
		Guidance: "Access control and isolation mechanisms look minimal.",
		Fix:      "Add permission checks on kernel interfaces, capability or ACL enforcement, and user isolation.",
	},
	"power_management": {
		Title:    "Power Management",
		Guidance: "Power state handling was not substantially detected.",
		Fix:      "Implement an idle path and basic power states; ACPI or frequency scaling go further.",
	},
	"profiling": {
		Title:    "Profiling",
		Guidance: "Performance observation hooks are missing.",
		Fix:      "Add counters or tracepoints for key kernel paths and a way to read them out.",
	},
}

// GetGuidance returns the guidance for a component, falling back to a
// generic entry derived from the name for custom rubrics.
func GetGuidance(name string) ComponentGuidance {
	if g, ok := componentGuidance[name]; ok {
		return g
	}
	title := strings.ReplaceAll(name, "_", " ")
	return ComponentGuidance{
		Title:    strings.ToUpper(title[:1]) + title[1:],
		Guidance: fmt.Sprintf("The %s component scored below the follow-up threshold.", title),
		Fix:      fmt.Sprintf("Implement the missing %s functionality toward the rubric targets.", title),
	}
}

var uiMessages = map[string]string{
	"Target":                 "Target: %s",
	"Rubric":                 "Rubric: %s (%d components)",
	"StatusScanning":         "Scanning source tree",
	"ScanCancelled":          "\nEvaluation cancelled.",
	"FilesFound":             "Scan complete: %d source files (%d skipped)",
	"NoSourceFiles":          "No matching source files found; all components score on zero evidence.",
	"SkipWarningsTitle":      "Files skipped during scan:",
	"AllComponentsEvaluated": "All components evaluated.",
	"EvaluationTime":         "Evaluation completed in %.2fs",
	"ResultsTitle":           "=== Component Results ===",
	"SummaryTitle":           "=== Evaluation Summary ===",
	"KernelScore":            "Kernel Primitives Score: %.1f%%",
	"OSScore":                "OS Services Score:       %.1f%%",
	"OverallScore":           "Overall Score:           %.1f%%",
	"Classification":         "Classification:          %s (%s)",
	"FilesScanned":           "Files Scanned:           %d",
	"NeedsWorkTitle":         "Components below %.0f%% (heaviest weight first):",
	"NoGaps":                 "All components meet the follow-up threshold.",
	"JSONReportSaved":        "JSON report saved to: %s",
	"JSONReportFailed":       "Failed to save JSON report: %v",
	"HTMLReportSaved":        "HTML report saved to: %s",
	"HTMLReportFailed":       "Failed to save HTML report: %v",
	"EvaluateFailed":         "Evaluation failed: %v",
	"InteractiveWelcome":     "Type 'help' for commands. 'evaluate <path>' scores a source tree.",
	"InteractiveNoRubric":    "No rubric loaded. Use the built-in default rubric?",
	"InteractiveBye":         "Bye.",
}

// GetUIMessage formats the UI string registered under key.
func GetUIMessage(key string, args ...any) string {
	msg, ok := uiMessages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
