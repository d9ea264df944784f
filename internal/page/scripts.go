package page

import (
	"encoding/json"
	"fmt"
)

// jsString quotes s as a JavaScript string literal. JSON string syntax is a subset of
// JavaScript's, so the encoder's output can be spliced into an expression verbatim.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal.
		panic(err)
	}
	return string(b)
}

const jsIsVisible = `function(el) {
	if (!el || !el.isConnected) return false;
	const st = window.getComputedStyle(el);
	if (st.visibility === 'hidden' || st.visibility === 'collapse' || st.display === 'none') return false;
	const r = el.getBoundingClientRect();
	return r.width > 0 && r.height > 0;
}`

// findInputJS locates the first input/textarea whose placeholder contains placeholder,
// case-insensitively.
func findInputJS(placeholder string) string {
	return fmt.Sprintf(`(function() {
	const want = %s.toLowerCase();
	return Array.from(document.querySelectorAll('input,textarea')).find(el =>
		(el.getAttribute('placeholder') || '').toLowerCase().includes(want)) || null;
})()`, jsString(placeholder))
}

// fillJS sets the value through the prototype setter so framework-managed inputs see the
// change, then fires input and change.
func fillJS(placeholder, text string) string {
	return fmt.Sprintf(`(function() {
	const el = %s;
	if (!el) return false;
	el.focus();
	const proto = el.tagName === 'TEXTAREA' ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
	Object.getOwnPropertyDescriptor(proto, 'value').set.call(el, %s);
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`, findInputJS(placeholder), jsString(text))
}

func outputReadyJS(selector string) string {
	return fmt.Sprintf(`(function() {
	return Array.from(document.querySelectorAll(%s)).some(el => {
		const isInput = el.tagName === 'TEXTAREA' || el.getAttribute('role') === 'textbox';
		return !isInput && el.textContent && el.textContent.trim().length > 0;
	});
})()`, jsString(selector))
}

func outputTextJS(selector string) string {
	return fmt.Sprintf(`(function() {
	const el = document.querySelector(%s);
	return el && el.textContent ? el.textContent : '';
})()`, jsString(selector))
}

// nativeTextVisibleJS reports whether any visible element's text contains a code point of
// the Sinhala block.
const nativeTextVisibleJS = `(function() {
	const visible = ` + jsIsVisible + `;
	const re = /[\u0D80-\u0DFF]/;
	return Array.from(document.querySelectorAll('body *')).some(el => re.test(el.textContent || '') && visible(el));
})()`

func firstVisibleJS(selector string) string {
	return fmt.Sprintf(`(function() {
	const visible = %s;
	return visible(document.querySelector(%s));
})()`, jsIsVisible, jsString(selector))
}

const readyStateJS = `document.readyState === 'complete'`
