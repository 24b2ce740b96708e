package editor

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeIntent builds a typed intent from a wire name and argument map,
// as received by transport adapters. Numbers arrive as float64 from
// JSON, so decoding is weakly typed.
func DecodeIntent(name string, args map[string]any) (Intent, error) {
	var intent Intent
	switch name {
	case AddCondition{}.intentName():
		intent = &AddCondition{}
	case AddGroup{}.intentName():
		intent = &AddGroup{}
	case Remove{}.intentName():
		intent = &Remove{}
	case SwitchMode{}.intentName():
		intent = &SwitchMode{}
	case Reorder{}.intentName():
		intent = &Reorder{}
	case SwitchLeafKind{}.intentName():
		intent = &SwitchLeafKind{}
	case SetOperator{}.intentName():
		intent = &SetOperator{}
	case SetLeft{}.intentName():
		intent = &SetLeft{}
	case SetRight{}.intentName():
		intent = &SetRight{}
	case SetRightText{}.intentName():
		intent = &SetRightText{}
	case SetScript{}.intentName():
		intent = &SetScript{}
	case SetLiteral{}.intentName():
		intent = &SetLiteral{}
	default:
		return nil, fmt.Errorf("unknown intent: %q", name)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           intent,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build intent decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return nil, fmt.Errorf("failed to decode %q intent: %w", name, err)
	}
	return deref(intent), nil
}

// Name reports the wire name of an intent.
func Name(intent Intent) string {
	return intent.intentName()
}

func deref(intent Intent) Intent {
	switch v := intent.(type) {
	case *AddCondition:
		return *v
	case *AddGroup:
		return *v
	case *Remove:
		return *v
	case *SwitchMode:
		return *v
	case *Reorder:
		return *v
	case *SwitchLeafKind:
		return *v
	case *SetOperator:
		return *v
	case *SetLeft:
		return *v
	case *SetRight:
		return *v
	case *SetRightText:
		return *v
	case *SetScript:
		return *v
	case *SetLiteral:
		return *v
	default:
		return intent
	}
}
