package server

// clientJS forwards clicks by handle id, swaps in rendered HTML and
// re-dispatches semantic events on their hosts as "labelselect:<name>".
// window.labelSelect(host, ...args) sends a call.
const clientJS = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (m) {
    var msg = JSON.parse(m.data);
    if (msg.type !== "render") return;
    var app = document.getElementById("app");
    if (app) app.outerHTML = msg.html;
    (msg.events || []).forEach(function (ev) {
      var host = document.getElementById(ev.host);
      if (host) host.dispatchEvent(new CustomEvent("labelselect:" + ev.name, {bubbles: true}));
    });
    if (msg.error) console.error("labelselect", msg.error.code, msg.error.message);
    else if (msg.result !== undefined) console.log("labelselect result", msg.result);
  };
  document.addEventListener("click", function (e) {
    var el = e.target.closest ? e.target.closest("[data-hid]") : null;
    if (!el || ws.readyState !== 1) return;
    ws.send(JSON.stringify({type: "click", hid: el.getAttribute("data-hid")}));
  });
  window.labelSelect = function (host) {
    ws.send(JSON.stringify({type: "call", host: host, args: Array.prototype.slice.call(arguments, 1)}));
  };
})();`

const pageCSS = `body{font-family:sans-serif;margin:2em}
.field{margin:1em 0}
.labelSelect{position:absolute;inset:0;cursor:pointer;border:1px solid #999;background:#fff}
.labelSelect.theme_dark{background:#222;color:#eee}
.labelSelect>span{display:block;line-height:1.6em;padding:0 .4em;overflow:hidden}
.labelSelect>span.selected-none::before{content:"\2014";opacity:.5}
.labelSelect>ul{list-style:none;margin:0;padding:0;overflow:hidden;max-height:0;position:absolute;left:-1px;right:-1px;background:inherit;border:1px solid #999;z-index:1}
.labelSelect.unfold_down>ul{top:100%}
.labelSelect.unfold_up>ul{bottom:100%}
.labelSelect>ul>li{line-height:1.6em;min-height:1.6em;padding:0 .4em}
.labelSelect.highlight-selection>ul>li.selected{font-weight:bold}`
