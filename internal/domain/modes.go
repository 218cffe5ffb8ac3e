package domain

// Mode is one of the fixed operating profiles of the assistant. A mode
// selects both the system prompt framing and the generation strategy used
// for a send.
type Mode string

const (
	ModeUniversal     Mode = "universal"
	ModeMagic         Mode = "magic"
	ModeArchitect     Mode = "architect"
	ModeVideo         Mode = "video"
	ModeImage         Mode = "image"
	ModeThreeD        Mode = "three_d"
	ModeEditor        Mode = "editor"
	ModeConverter     Mode = "converter"
	ModeSecurity      Mode = "security"
	ModeImpact        Mode = "impact"
	ModeEducator      Mode = "educator"
	ModeTutor         Mode = "tutor"
	ModeLife          Mode = "life"
	ModeBusiness      Mode = "business"
	ModeCode          Mode = "code"
	ModeHealth        Mode = "health"
	ModeAccessibility Mode = "accessibility"
)

// Modes lists every mode in display order.
var Modes = []Mode{
	ModeUniversal, ModeMagic, ModeArchitect, ModeVideo, ModeImage,
	ModeThreeD, ModeEditor, ModeConverter, ModeSecurity, ModeImpact,
	ModeEducator, ModeTutor, ModeLife, ModeBusiness, ModeCode,
	ModeHealth, ModeAccessibility,
}

var modeLabels = map[Mode]string{
	ModeUniversal:     "Universal Solver",
	ModeMagic:         "Magic Build",
	ModeArchitect:     "App Architect",
	ModeVideo:         "Video Studio",
	ModeImage:         "Image Studio",
	ModeThreeD:        "3D Generator",
	ModeEditor:        "Media Editor",
	ModeConverter:     "File Converter",
	ModeSecurity:      "Security Guard",
	ModeImpact:        "Global Impact",
	ModeEducator:      "Educator",
	ModeTutor:         "Language Tutor",
	ModeLife:          "Fix My Life",
	ModeBusiness:      "Business Opt.",
	ModeCode:          "Code Forge",
	ModeHealth:        "Health Lens",
	ModeAccessibility: "Accessible",
}

// Label returns the human-facing name of the mode. Unknown modes report the
// universal label so display code never sees an empty string.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return modeLabels[ModeUniversal]
}

// Valid reports whether m is a member of the closed mode set.
func (m Mode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

// Placeholder returns the input hint shown for the mode.
func (m Mode) Placeholder() string {
	switch m {
	case ModeVideo:
		return "Describe the video you want to create..."
	case ModeImage:
		return "Describe the image you want to generate..."
	case ModeArchitect:
		return "Describe the app you want to build (Mobile, Web, Desktop)..."
	default:
		return "Enter command, upload media, or ask for analysis..."
	}
}

// StrategyKind identifies a generation strategy family.
type StrategyKind string

const (
	StrategyChat   StrategyKind = "chat"
	StrategyImage  StrategyKind = "image"
	StrategyThreeD StrategyKind = "three_d"
	StrategyVideo  StrategyKind = "video"
	StrategyEdit   StrategyKind = "edit"
)

// ResolveStrategy maps a mode plus the staged attachment to exactly one
// strategy. The precedence is fixed: media synthesis modes only fire without
// an attachment, the editor only fires with an image attachment, and every
// other combination (including modes this build does not recognize) falls
// through to the conversational strategy.
func ResolveStrategy(mode Mode, att *Attachment) StrategyKind {
	switch {
	case mode == ModeVideo && att == nil:
		return StrategyVideo
	case mode == ModeImage && att == nil:
		return StrategyImage
	case mode == ModeThreeD && att == nil:
		return StrategyThreeD
	case mode == ModeEditor && att != nil && att.Kind == AttachmentImage:
		return StrategyEdit
	default:
		return StrategyChat
	}
}

// RoleInstruction returns the persona framing injected into the system
// instruction for the conversational strategy.
func (m Mode) RoleInstruction() string {
	switch m {
	case ModeArchitect:
		return "You are the CHIEF SOFTWARE ARCHITECT. Build apps. Return 'prototype' widget for main code, 'code' for snippets."
	case ModeSecurity:
		return "You are a MILITARY-GRADE CYBERSECURITY EXPERT. Analyze permissions, code vulnerabilities, and privacy risks. Provide a 'security_report' widget."
	case ModeConverter:
		return "You are a UNIVERSAL FILE CONVERTER. Since you cannot process files directly in browser, GENERATE PYTHON (ffmpeg/pandas/pillow) or NODE.JS scripts that the user can run to convert their files. Explain the code."
	case ModeEditor:
		return "You are a MEDIA EDITOR. If no image is provided, ask for one. If text is provided, explain how you would edit it or write code to do so."
	case ModeThreeD:
		return "You are a 3D MODELING ASSISTANT. If user asks for an image, we handle it externally. If user asks for OBJ/GLB code, generate Three.js code."
	default:
		return "You are SHAH, the Ultimate Universal Intelligence. Research, analyze, create."
	}
}
