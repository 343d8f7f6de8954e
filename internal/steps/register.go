package steps

import "github.com/flowcap/flowcap/internal/stepregistry"

// init registers every built-in and high-level handler onto the shared
// global registry, mirroring internal/tools's self-registering init()
// convention (each tool file called MustRegister for itself rather than
// a Runner wiring them up by hand).
func init() {
	g := stepregistry.Global()

	g.MustRegister("goto", gotoHandler{})
	g.MustRegister("back", backHandler{})
	g.MustRegister("reload", reloadHandler{})

	g.MustRegister("click", clickHandler{})
	g.MustRegister("dblclick", dblclickHandler{})
	g.MustRegister("fill", fillHandler{})
	g.MustRegister("press", pressHandler{})
	g.MustRegister("check", checkHandler{})
	g.MustRegister("uncheck", uncheckHandler{})
	g.MustRegister("selectOption", selectOptionHandler{})

	g.MustRegister("waitFor", waitForHandler{})
	g.MustRegister("waitForVisible", waitForVisibleHandler{})
	g.MustRegister("waitForHidden", waitForHiddenHandler{})
	g.MustRegister("waitForNetworkIdle", waitForNetworkIdleHandler{})

	g.MustRegister("expectVisible", expectVisibleHandler{})
	g.MustRegister("expectHidden", expectHiddenHandler{})
	g.MustRegister("expectText", expectTextHandler{})
	g.MustRegister("expectUrl", expectURLHandler{})

	g.MustRegister("storeText", storeTextHandler{})
	g.MustRegister("storeAttr", storeAttrHandler{})

	g.MustRegister("screenshot", screenshotHandler{})
	g.MustRegister("log", logHandler{})
	g.MustRegister("dumpDom", dumpDomHandler{})

	g.MustRegister("useStorageState", useStorageStateHandler{})
	g.MustRegister("saveStorageState", saveStorageStateHandler{})

	g.MustRegister("selectOverlayOption", selectOverlayOptionHandler{})
	g.MustRegister("selectWijmoCombo", selectWijmoComboHandler{})
	g.MustRegister("clickWijmoGridCell", clickWijmoGridCellHandler{})
	g.MustRegister("setDatePicker", setDatePickerHandler{})
	g.MustRegister("uploadFile", uploadFileHandler{})
	g.MustRegister("waitForToast", waitForToastHandler{})
	g.MustRegister("assertNoConsoleError", assertNoConsoleErrorHandler{})
	g.MustRegister("apiMock", apiMockHandler{})
	g.MustRegister("routeStub", routeStubHandler{})
}
